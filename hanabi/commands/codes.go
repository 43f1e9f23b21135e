package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hanabi-bot/hanabi/hanabi"
	"github.com/hanabi-bot/hanabi/hanabi/config"
	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
)

var CreateCode = discord.SlashCommandCreate{
	Name:        "createcode",
	Description: "🛠️ Create a redemption code (admin only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "Coins granted per redemption",
			Required:    true,
			MinValue:    intPtr(1),
		},
		discord.ApplicationCommandOptionInt{
			Name:        "max_uses",
			Description: "Total redemptions allowed (0 = unlimited)",
			Required:    false,
			MinValue:    intPtr(0),
		},
		discord.ApplicationCommandOptionInt{
			Name:        "expires_hours",
			Description: "Hours until the code expires (0 = never)",
			Required:    false,
			MinValue:    intPtr(0),
		},
	},
}

var ListCodes = discord.SlashCommandCreate{
	Name:        "listcodes",
	Description: "🛠️ List redemption codes and their usage (admin only)",
}

var DeleteCode = discord.SlashCommandCreate{
	Name:        "deletecode",
	Description: "🛠️ Delete a redemption code (admin only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "code",
			Description: "The code to delete",
			Required:    true,
		},
	},
}

func CreateCodeHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return errorEmbed(e, "Unauthorized", "This command is restricted to bot admins.")
		}

		data := e.SlashCommandInteractionData()
		amount := int64(data.Int("amount"))
		maxUses := data.Int("max_uses")

		var expiresAt time.Time
		if hours := data.Int("expires_hours"); hours > 0 {
			expiresAt = time.Now().Add(time.Duration(hours) * time.Hour)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		code, err := b.RedeemEngine.CreateCode(ctx, e.User().ID.String(), models.RewardCoins, amount, maxUses, expiresAt)
		if err != nil {
			return errorEmbed(e, "Error", "Failed to create the code.")
		}

		uses := "unlimited"
		if maxUses > 0 {
			uses = fmt.Sprintf("%d", maxUses)
		}
		expiry := "never"
		if !expiresAt.IsZero() {
			expiry = fmt.Sprintf("<t:%d:R>", expiresAt.Unix())
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🎟️ Code Created",
				Description: fmt.Sprintf("Code: `%s`\nReward: **%d** coins\nUses: %s\nExpires: %s",
					code.Code, amount, uses, expiry),
				Color:     config.SuccessColor,
				Timestamp: &now,
			}},
			Flags: discord.MessageFlagEphemeral,
		})
	}
}

func ListCodesHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return errorEmbed(e, "Unauthorized", "This command is restricted to bot admins.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		codes, err := b.RedeemEngine.ListCodes(ctx)
		if err != nil {
			return errorEmbed(e, "Error", "Failed to list codes.")
		}
		if len(codes) == 0 {
			return errorEmbed(e, "No Codes", "There are no redemption codes yet.")
		}

		var description strings.Builder
		for _, code := range codes {
			description.WriteString(formatCodeLine(code))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🎟️ Redemption Codes",
				Description: description.String(),
				Color:       config.InfoColor,
				Timestamp:   &now,
			}},
			Flags: discord.MessageFlagEphemeral,
		})
	}
}

func DeleteCodeHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return errorEmbed(e, "Unauthorized", "This command is restricted to bot admins.")
		}

		rawCode := e.SlashCommandInteractionData().String("code")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.RedeemEngine.DeleteCode(ctx, rawCode); err != nil {
			if errors.Is(err, economy.ErrNotFound) {
				return errorEmbed(e, "Not Found", "No such code.")
			}
			return errorEmbed(e, "Error", "Failed to delete the code.")
		}

		return successEmbed(e, "🎟️ Code Deleted", fmt.Sprintf("Deleted `%s`.", strings.ToUpper(strings.TrimSpace(rawCode))))
	}
}

func formatCodeLine(code *models.RedeemCode) string {
	uses := fmt.Sprintf("%d", len(code.Uses))
	if code.MaxUses > 0 {
		uses = fmt.Sprintf("%d/%d", len(code.Uses), code.MaxUses)
	}

	status := ""
	if code.Expired(time.Now()) {
		status = " (expired)"
	}

	return fmt.Sprintf("`%s` — %d coins, %s uses%s\n", code.Code, code.RewardAmount, uses, status)
}
