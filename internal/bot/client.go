package bot

import (
	"bytes"         // Request body buffering
	"encoding/json" // JSON encoding/decoding
	"errors"        // Sentinel errors
	"fmt"           // Error formatting
	"net/http"      // HTTP client
	"time"          // Client timeout
)

// ErrUnavailable covers transport failures and backend 5xx responses. The
// command layer renders it as a generic try-again message without leaking
// internals.
var ErrUnavailable = errors.New("backend unavailable")

// APIError is a structured rejection from the backend (validation, not
// found, or a failed precondition). Its message is rendered verbatim.
type APIError struct {
	Message string // First structured reason from the backend
}

// Error returns the backend's reason
func (e *APIError) Error() string {
	return e.Message
}

// Client is the HTTP JSON client the bot uses to reach the backend
type Client struct {
	baseURL string       // Backend base URL
	http    *http.Client // Underlying HTTP client
}

// NewClient creates a backend client for the given base URL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,                                 // Backend base URL
		http:    &http.Client{Timeout: 10 * time.Second}, // Bounded request time
	}
}

// User mirrors the backend's user payload
type User struct {
	DiscordID string `json:"discord_id"` // Stable external id
	Username  string `json:"username"`   // Display name
	Level     int    `json:"level"`      // Current level
	XP        int    `json:"xp"`         // Accumulated XP
	Money     int    `json:"money"`      // Balance
	XPNeeded  int    `json:"xp_needed"`  // XP required for the next level
}

// Adventure mirrors the backend's adventure template payload
type Adventure struct {
	Name           string `json:"name"`             // Template name
	Description    string `json:"description"`      // Flavor text
	RequiredLevel  int    `json:"required_level"`   // Minimum level
	TimeToComplete int    `json:"time_to_complete"` // Seconds to finish
	RewardMin      int    `json:"reward_min"`       // Minimum money reward
	RewardMax      int    `json:"reward_max"`       // Maximum money reward
	XPMin          int    `json:"xp_min"`           // Minimum XP reward
	XPMax          int    `json:"xp_max"`           // Maximum XP reward
}

// Gear mirrors the backend's gear payload
type Gear struct {
	Name        string  `json:"name"`        // Item name
	Description string  `json:"description"` // Flavor text
	GearType    string  `json:"gear_type"`   // Category
	Cost        int     `json:"cost"`        // Price
	XPBonus     float64 `json:"xp_bonus"`    // XP percent bonus
	MoneyBonus  float64 `json:"money_bonus"` // Money percent bonus
	TimeBonus   float64 `json:"time_bonus"`  // Time percent cost
}

// LevelUpResult mirrors the level-up response
type LevelUpResult struct {
	Message  string `json:"message"`   // Congratulations line
	Level    int    `json:"level"`     // New level
	XP       int    `json:"xp"`        // Remaining XP
	XPNeeded int    `json:"xp_needed"` // XP required for the next level
}

// StartResult mirrors the adventure start response
type StartResult struct {
	Name     string `json:"name"`      // Template name
	TimeLeft int    `json:"time_left"` // Countdown seconds
}

// StatusResult mirrors the adventure status response
type StatusResult struct {
	Complete bool   `json:"complete"`  // True when the countdown is exhausted
	Name     string `json:"name"`      // Template name while running
	TimeLeft int    `json:"time_left"` // Seconds remaining while running
}

// CompleteResult mirrors the adventure completion response
type CompleteResult struct {
	Message       string `json:"message"`        // Outcome message
	AdventureName string `json:"adventure_name"` // Settled template
	XPReward      int    `json:"xp_reward"`      // Granted XP
	MoneyReward   int    `json:"money_reward"`   // Granted money
}

// PurchaseResult mirrors the gear purchase response
type PurchaseResult struct {
	Message string `json:"message"` // Purchase line
	Balance int    `json:"balance"` // New balance
}

// BestGearResult mirrors the best-gear response
type BestGearResult struct {
	BestXP    Gear `json:"best_xp"`    // Highest XP bonus
	BestMoney Gear `json:"best_money"` // Highest money bonus
	BestTime  Gear `json:"best_time"`  // Lowest time cost
}

// CoinflipResult mirrors the coinflip response
type CoinflipResult struct {
	Win     bool   `json:"win"`     // Outcome
	Result  string `json:"result"`  // Drawn side
	Balance int    `json:"balance"` // New balance
	Message string `json:"message"` // Outcome line
}

// SlotSymbol is one drawn reel with its display glyph
type SlotSymbol struct {
	Symbol string `json:"symbol"` // Symbol name
	Emoji  string `json:"emoji"`  // Display glyph
}

// SlotsResult mirrors the slot machine response
type SlotsResult struct {
	Slots      []SlotSymbol `json:"slots"`      // Drawn reels
	Win        bool         `json:"win"`        // Outcome
	Multiplier float64      `json:"multiplier"` // Payout multiplier
	Message    string       `json:"message"`    // Outcome line
	Balance    int          `json:"balance"`    // New balance
}

// do sends one JSON request and decodes the response into out. 4xx bodies
// become APIErrors with the backend's reason; transport failures and 5xx
// become ErrUnavailable.
func (c *Client) do(method, path string, payload, out any) error {
	var body *bytes.Buffer
	// Encode the payload when there is one
	if payload != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(payload); err != nil {
			return err
		}
	}
	var req *http.Request
	var err error
	// Build the request with or without a body
	if body != nil {
		req, err = http.NewRequest(method, c.baseURL+path, body)
	} else {
		req, err = http.NewRequest(method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json") // JSON over HTTP
	resp, err := c.http.Do(req)
	// Transport failure: the backend is unreachable
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	// 2xx: decode the expected shape
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}
	// 4xx: surface the backend's structured reason verbatim
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var e struct {
			Error string `json:"error"` // Structured reason
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return &APIError{Message: e.Error}
		}
		return &APIError{Message: "Invalid request"}
	}
	// Anything else is treated as the backend being down
	return ErrUnavailable
}

// identify is the payload shape shared by user-keyed endpoints
type identify struct {
	DiscordID string `json:"discord_id"`         // Stable external id
	Username  string `json:"username,omitempty"` // Display name when known
}

// Profile fetches (or lazily creates) a user's profile
func (c *Client) Profile(discordID, username string) (*User, error) {
	var user User
	err := c.do(http.MethodPost, "/users/profile", identify{DiscordID: discordID, Username: username}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LevelUp tries to advance the user one level
func (c *Client) LevelUp(discordID string) (*LevelUpResult, error) {
	var result LevelUpResult
	err := c.do(http.MethodPost, "/users/level_up", identify{DiscordID: discordID}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Adventures lists the adventure templates
func (c *Client) Adventures() ([]Adventure, error) {
	var resp struct {
		Adventures []Adventure `json:"adventures"` // Template list
	}
	if err := c.do(http.MethodGet, "/adventures/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Adventures, nil
}

// StartAdventure starts the named adventure for the user
func (c *Client) StartAdventure(discordID, username, name string) (*StartResult, error) {
	payload := struct {
		identify
		AdventureName string `json:"adventure_name"` // Template to start
	}{identify{DiscordID: discordID, Username: username}, name}
	var result StartResult
	if err := c.do(http.MethodPost, "/adventures/start", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdventureStatus polls the user's running adventure
func (c *Client) AdventureStatus(discordID string) (*StatusResult, error) {
	var result StatusResult
	if err := c.do(http.MethodPost, "/adventures/status", identify{DiscordID: discordID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CompleteAdventure settles the user's running adventure
func (c *Client) CompleteAdventure(discordID string) (*CompleteResult, error) {
	var result CompleteResult
	if err := c.do(http.MethodPost, "/adventures/complete", identify{DiscordID: discordID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Shop lists the gear for sale
func (c *Client) Shop() ([]Gear, error) {
	var resp struct {
		Gear []Gear `json:"gear"` // Shop items
	}
	if err := c.do(http.MethodGet, "/gear/shop", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Gear, nil
}

// PurchaseGear buys the named item for the user
func (c *Client) PurchaseGear(discordID, username, name string) (*PurchaseResult, error) {
	payload := struct {
		identify
		GearName string `json:"gear_name"` // Item to buy
	}{identify{DiscordID: discordID, Username: username}, name}
	var result PurchaseResult
	if err := c.do(http.MethodPost, "/gear/purchase", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// OwnedGear lists the user's items
func (c *Client) OwnedGear(discordID string) ([]Gear, error) {
	var resp struct {
		Gear []Gear `json:"gear"` // Owned items
	}
	if err := c.do(http.MethodPost, "/gear/owned", identify{DiscordID: discordID}, &resp); err != nil {
		return nil, err
	}
	return resp.Gear, nil
}

// BestGear returns the user's best item per stat
func (c *Client) BestGear(discordID string) (*BestGearResult, error) {
	var result BestGearResult
	if err := c.do(http.MethodPost, "/gear/best", identify{DiscordID: discordID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Coinflip places a coinflip bet
func (c *Client) Coinflip(discordID, username string, bet int, side string) (*CoinflipResult, error) {
	payload := struct {
		identify
		Bet  int    `json:"bet"`  // Stake
		Side string `json:"side"` // heads or tails
	}{identify{DiscordID: discordID, Username: username}, bet, side}
	var result CoinflipResult
	if err := c.do(http.MethodPost, "/users/coinflip", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Slots spins the slot machine
func (c *Client) Slots(discordID, username string, bet int) (*SlotsResult, error) {
	payload := struct {
		identify
		Bet int `json:"bet"` // Stake
	}{identify{DiscordID: discordID, Username: username}, bet}
	var result SlotsResult
	if err := c.do(http.MethodPost, "/users/slots", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Leaderboard fetches the top users ranked by "level" or "money"
func (c *Client) Leaderboard(ranking string) ([]User, error) {
	var resp struct {
		Users []User `json:"users"` // Ranked users
	}
	if err := c.do(http.MethodGet, "/users/leaderboard/"+ranking, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
