package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hanabi-bot/hanabi/hanabi"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
)

var Lock = discord.SlashCommandCreate{
	Name:        "lock",
	Description: "🛠️ Lock a catalog character against transfers and sales (admin only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "character_id",
			Description: "Catalog ID of the character",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "reason",
			Description: "Why the character is being locked",
			Required:    false,
		},
	},
}

var Unlock = discord.SlashCommandCreate{
	Name:        "unlock",
	Description: "🛠️ Unlock a catalog character (admin only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "character_id",
			Description: "Catalog ID of the character",
			Required:    true,
		},
	},
}

func LockHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return errorEmbed(e, "Unauthorized", "This command is restricted to bot admins.")
		}

		data := e.SlashCommandInteractionData()
		characterID := int64(data.Int("character_id"))
		reason := data.String("reason")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.CatalogRepository.SetLocked(ctx, characterID, true, e.User().ID.String(), reason); err != nil {
			if errors.Is(err, economy.ErrNotFound) {
				return errorEmbed(e, "Not Found", fmt.Sprintf("No catalog character with ID %d.", characterID))
			}
			return errorEmbed(e, "Error", "Failed to lock the character.")
		}

		description := fmt.Sprintf("Character #%d is now locked.", characterID)
		if reason != "" {
			description += fmt.Sprintf("\nReason: %s", reason)
		}
		return successEmbed(e, "🔒 Character Locked", description)
	}
}

func UnlockHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return errorEmbed(e, "Unauthorized", "This command is restricted to bot admins.")
		}

		characterID := int64(e.SlashCommandInteractionData().Int("character_id"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.CatalogRepository.SetLocked(ctx, characterID, false, "", ""); err != nil {
			if errors.Is(err, economy.ErrNotFound) {
				return errorEmbed(e, "Not Found", fmt.Sprintf("No catalog character with ID %d.", characterID))
			}
			return errorEmbed(e, "Error", "Failed to unlock the character.")
		}

		return successEmbed(e, "🔓 Character Unlocked", fmt.Sprintf("Character #%d is unlocked again.", characterID))
	}
}
