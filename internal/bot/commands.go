package bot

import (
	"errors" // Sentinel checks
	"fmt"    // Message formatting

	"github.com/bwmarrin/discordgo" // Discord gateway and interactions
	"github.com/sirupsen/logrus"    // Structured logging
)

// unavailableMessage is shown for transport failures and backend errors
const unavailableMessage = "The game backend is unavailable right now. Please try again later."

// commands is the static slash-command registry the bot registers on startup
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "profile",
		Description: "Show your level, XP and money",
	},
	{
		Name:        "levelup",
		Description: "Spend XP to advance a level",
	},
	{
		Name:        "adventures",
		Description: "List the available adventures",
	},
	{
		Name:        "adventure",
		Description: "Manage your adventure",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "start",
				Description: "Start an adventure",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Adventure name",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Check your adventure's countdown",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "complete",
				Description: "Collect your adventure's rewards",
			},
		},
	},
	{
		Name:        "shop",
		Description: "Browse the gear shop",
	},
	{
		Name:        "gear",
		Description: "Manage your gear",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "buy",
				Description: "Buy an item from the shop",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "name",
						Description: "Item name",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "owned",
				Description: "List the gear you own",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "best",
				Description: "Show your best item per stat",
			},
		},
	},
	{
		Name:        "gamble",
		Description: "Wager your money",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "coinflip",
				Description: "Bet on a coin flip",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "bet",
						Description: "Amount to wager",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "side",
						Description: "Side to call",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "heads", Value: "heads"},
							{Name: "tails", Value: "tails"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "slots",
				Description: "Spin the slot machine",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "bet",
						Description: "Amount to wager",
						Required:    true,
					},
				},
			},
		},
	},
	{
		Name:        "leaderboard",
		Description: "Show the top players",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "ranking",
				Description: "Ranking to show",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "level", Value: "level"},
					{Name: "money", Value: "money"},
				},
			},
		},
	},
}

// Bot ties a Discord session to the backend client
type Bot struct {
	session *discordgo.Session // Discord gateway session
	api     *Client            // Backend client
}

// New creates a bot for the given token and backend base URL
func New(token, apiBaseURL string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	bot := &Bot{session: session, api: NewClient(apiBaseURL)}
	session.AddHandler(bot.handleInteraction) // Route all interactions
	return bot, nil
}

// Start opens the gateway connection and registers the command set
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return err
	}
	// Register the static command set globally
	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("register command %s: %w", cmd.Name, err)
		}
	}
	logrus.WithField("commands", len(commands)).Info("Bot started") // Log startup
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() error {
	return b.session.Close()
}

// interactionUser returns the invoking user regardless of guild or DM context
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// handleInteraction dispatches a slash command to its handler
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	switch data.Name {
	case "profile":
		b.handleProfile(s, i)
	case "levelup":
		b.handleLevelUp(s, i)
	case "adventures":
		b.handleAdventures(s, i)
	case "adventure":
		b.handleAdventure(s, i, data)
	case "shop":
		b.handleShop(s, i)
	case "gear":
		b.handleGear(s, i, data)
	case "gamble":
		b.handleGamble(s, i, data)
	case "leaderboard":
		b.handleLeaderboard(s, i, data)
	}
}

// respondEmbed replies to an interaction with one embed
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to respond to interaction") // Log delivery failure
	}
}

// respondError replies with the backend's reason when it rejected the
// request, or a generic message when the backend could not be reached
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	message := unavailableMessage
	var apiErr *APIError
	// Structured rejections are shown verbatim
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	} else {
		logrus.WithError(err).Error("Backend request failed") // Log the outage
	}
	respondErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral, // Only the invoker sees errors
		},
	})
	if respondErr != nil {
		logrus.WithError(respondErr).Error("Failed to respond to interaction")
	}
}

// optionString returns the named string option from a flat option list
func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// optionInt returns the named integer option from a flat option list
func optionInt(options []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	for _, opt := range options {
		if opt.Name == name {
			return int(opt.IntValue())
		}
	}
	return 0
}

// handleProfile shows the invoker's profile
func (b *Bot) handleProfile(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	profile, err := b.api.Profile(user.ID, user.Username)
	if err != nil {
		respondError(s, i, err)
		return
	}
	respondEmbed(s, i, profileEmbed(profile))
}

// handleLevelUp tries to advance the invoker one level
func (b *Bot) handleLevelUp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	result, err := b.api.LevelUp(user.ID)
	if err != nil {
		respondError(s, i, err)
		return
	}
	respondEmbed(s, i, levelUpEmbed(result))
}

// handleAdventures lists the adventure templates
func (b *Bot) handleAdventures(s *discordgo.Session, i *discordgo.InteractionCreate) {
	adventures, err := b.api.Adventures()
	if err != nil {
		respondError(s, i, err)
		return
	}
	respondEmbed(s, i, adventuresEmbed(adventures))
}

// handleAdventure dispatches the adventure subcommands
func (b *Bot) handleAdventure(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	user := interactionUser(i)
	sub := data.Options[0]
	switch sub.Name {
	case "start":
		result, err := b.api.StartAdventure(user.ID, user.Username, optionString(sub.Options, "name"))
		if err != nil {
			respondError(s, i, err)
			return
		}
		respondEmbed(s, i, startEmbed(result))
	case "status":
		result, err := b.api.AdventureStatus(user.ID)
		if err != nil {
			respondError(s, i, err)
			return
		}
		respondEmbed(s, i, statusEmbed(result))
	case "complete":
		result, err := b.api.CompleteAdventure(user.ID)
		if err != nil {
			respondError(s, i, err)
			return
		}
		respondEmbed(s, i, completeEmbed(result))
	}
}

// handleShop lists the gear for sale
func (b *Bot) handleShop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	gear, err := b.api.Shop()
	if err != nil {
		respondError(s, i, err)
		return
	}
	respondEmbed(s, i, shopEmbed(gear))
}

// handleGear dispatches the gear subcommands
func (b *Bot) handleGear(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	user := interactionUser(i)
	sub := data.Options[0]
	switch sub.Name {
	case "buy":
		result, err := b.api.PurchaseGear(user.ID, user.Username, optionString(sub.Options, "name"))
		if err != nil {
			respondError(s, i, err)
			return
		}
		respondEmbed(s, i, purchaseEmbed(result))
	case "owned":
		gear, err := b.api.OwnedGear(user.ID)
		if err != nil {
			respondError(s, i, err)
			return
		}
		respondEmbed(s, i, ownedGearEmbed(user.Username, gear))
	case "best":
		result, err := b.api.BestGear(user.ID)
		if err != nil {
			respondError(s, i, err)
			return
		}
		respondEmbed(s, i, bestGearEmbed(result))
	}
}

// handleGamble dispatches the gamble subcommands
func (b *Bot) handleGamble(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	user := interactionUser(i)
	sub := data.Options[0]
	switch sub.Name {
	case "coinflip":
		result, err := b.api.Coinflip(user.ID, user.Username, optionInt(sub.Options, "bet"), optionString(sub.Options, "side"))
		if err != nil {
			respondError(s, i, err)
			return
		}
		respondEmbed(s, i, coinflipEmbed(result))
	case "slots":
		result, err := b.api.Slots(user.ID, user.Username, optionInt(sub.Options, "bet"))
		if err != nil {
			respondError(s, i, err)
			return
		}
		respondEmbed(s, i, slotsEmbed(result))
	}
}

// handleLeaderboard shows the requested ranking
func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	ranking := optionString(data.Options, "ranking")
	users, err := b.api.Leaderboard(ranking)
	if err != nil {
		respondError(s, i, err)
		return
	}
	respondEmbed(s, i, leaderboardEmbed(ranking, users))
}
