package bot

import (
	"fmt"     // Field formatting
	"strings" // Line joining

	"github.com/bwmarrin/discordgo" // Embed types
)

// Embed accent colors
const (
	colorInfo = 0x5865F2 // Neutral informational embeds
	colorWin  = 0x57F287 // Winning outcomes
	colorLoss = 0xED4245 // Losing outcomes
)

// outcomeColor picks the accent color for a win/loss result
func outcomeColor(win bool) int {
	if win {
		return colorWin
	}
	return colorLoss
}

// formatDuration renders a second count as "XmYs"
func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
}

// profileEmbed renders a user's profile
func profileEmbed(user *User) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Profile", user.Username),
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", user.Level), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("%d / %d", user.XP, user.XPNeeded), Inline: true},
			{Name: "Money", Value: fmt.Sprintf("%d", user.Money), Inline: true},
		},
	}
}

// levelUpEmbed renders a successful level up
func levelUpEmbed(result *LevelUpResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Level Up!",
		Description: result.Message,
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", result.Level), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("%d / %d", result.XP, result.XPNeeded), Inline: true},
		},
	}
}

// adventuresEmbed renders the adventure template list
func adventuresEmbed(adventures []Adventure) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Adventures",
		Color: colorInfo,
	}
	if len(adventures) == 0 {
		embed.Description = "No adventures are available."
		return embed
	}
	for _, adventure := range adventures {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s (level %d+)", adventure.Name, adventure.RequiredLevel),
			Value: fmt.Sprintf("%s\nTime: %s | Money: %d-%d | XP: %d-%d",
				adventure.Description, formatDuration(adventure.TimeToComplete),
				adventure.RewardMin, adventure.RewardMax, adventure.XPMin, adventure.XPMax),
		})
	}
	return embed
}

// startEmbed renders a freshly started adventure
func startEmbed(result *StartResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Adventure Started",
		Description: fmt.Sprintf("You set out on **%s**. Come back in %s!", result.Name, formatDuration(result.TimeLeft)),
		Color:       colorInfo,
	}
}

// statusEmbed renders the countdown poll result
func statusEmbed(result *StatusResult) *discordgo.MessageEmbed {
	// Countdown exhausted: prompt for completion
	if result.Complete {
		return &discordgo.MessageEmbed{
			Title:       "Adventure Complete",
			Description: "Your adventure is finished! Use `/adventure complete` to collect your rewards.",
			Color:       colorWin,
		}
	}
	return &discordgo.MessageEmbed{
		Title:       "Adventure In Progress",
		Description: fmt.Sprintf("**%s** finishes in %s.", result.Name, formatDuration(result.TimeLeft)),
		Color:       colorInfo,
	}
}

// completeEmbed renders the settled rewards
func completeEmbed(result *CompleteResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Adventure Rewards",
		Description: result.Message,
		Color:       colorWin,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Adventure", Value: result.AdventureName, Inline: true},
			{Name: "XP", Value: fmt.Sprintf("+%d", result.XPReward), Inline: true},
			{Name: "Money", Value: fmt.Sprintf("+%d", result.MoneyReward), Inline: true},
		},
	}
}

// gearLine renders one gear item as a field value
func gearLine(gear Gear) string {
	return fmt.Sprintf("%s\nXP +%.1f%% | Money +%.1f%% | Time -%.1f%%",
		gear.Description, gear.XPBonus, gear.MoneyBonus, gear.TimeBonus)
}

// shopEmbed renders the gear shop
func shopEmbed(gear []Gear) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Gear Shop",
		Color: colorInfo,
	}
	if len(gear) == 0 {
		embed.Description = "The shop is empty."
		return embed
	}
	for _, item := range gear {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s — %d money (%s)", item.Name, item.Cost, item.GearType),
			Value: gearLine(item),
		})
	}
	return embed
}

// purchaseEmbed renders a completed purchase
func purchaseEmbed(result *PurchaseResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Purchase Complete",
		Description: fmt.Sprintf("%s\nNew balance: %d", result.Message, result.Balance),
		Color:       colorWin,
	}
}

// ownedGearEmbed renders a user's inventory
func ownedGearEmbed(username string, gear []Gear) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Gear", username),
		Color: colorInfo,
	}
	if len(gear) == 0 {
		embed.Description = "You don't own any gear yet. Browse the `/shop`!"
		return embed
	}
	lines := make([]string, 0, len(gear))
	for _, item := range gear {
		lines = append(lines, fmt.Sprintf("**%s** (%s) — XP +%.1f%% | Money +%.1f%% | Time -%.1f%%",
			item.Name, item.GearType, item.XPBonus, item.MoneyBonus, item.TimeBonus))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}

// bestGearEmbed renders the best item per stat
func bestGearEmbed(result *BestGearResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Best Gear",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Best XP", Value: fmt.Sprintf("%s (+%.1f%%)", result.BestXP.Name, result.BestXP.XPBonus)},
			{Name: "Best Money", Value: fmt.Sprintf("%s (+%.1f%%)", result.BestMoney.Name, result.BestMoney.MoneyBonus)},
			{Name: "Best Time", Value: fmt.Sprintf("%s (-%.1f%%)", result.BestTime.Name, result.BestTime.TimeBonus)},
		},
	}
}

// coinflipEmbed renders a coinflip settlement
func coinflipEmbed(result *CoinflipResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Coinflip",
		Description: result.Message,
		Color:       outcomeColor(result.Win),
	}
}

// slotsEmbed renders a slot machine spin
func slotsEmbed(result *SlotsResult) *discordgo.MessageEmbed {
	reels := make([]string, 0, len(result.Slots))
	for _, slot := range result.Slots {
		reels = append(reels, slot.Emoji)
	}
	return &discordgo.MessageEmbed{
		Title:       "Slots",
		Description: fmt.Sprintf("%s\n\n%s", strings.Join(reels, " | "), result.Message),
		Color:       outcomeColor(result.Win),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Balance: %d", result.Balance),
		},
	}
}

// capitalize uppercases the first letter of an ASCII word
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// leaderboardEmbed renders the top players for a ranking
func leaderboardEmbed(ranking string, users []User) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Leaderboard — %s", capitalize(ranking)),
		Color: colorInfo,
	}
	if len(users) == 0 {
		embed.Description = "Nobody has played yet."
		return embed
	}
	lines := make([]string, 0, len(users))
	for rank, user := range users {
		var stat string
		if ranking == "money" {
			stat = fmt.Sprintf("%d money", user.Money)
		} else {
			stat = fmt.Sprintf("level %d", user.Level)
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** — %s", rank+1, user.Username, stat))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}
