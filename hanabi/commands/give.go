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

var Give = discord.SlashCommandCreate{
	Name:        "give",
	Description: "🛠️ Grant a catalog character to a user (admin only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who receives the character",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "character_id",
			Description: "Catalog ID of the character",
			Required:    true,
		},
	},
}

func GiveHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return errorEmbed(e, "Unauthorized", "This command is restricted to bot admins.")
		}

		data := e.SlashCommandInteractionData()
		target := data.User("user")
		characterID := int64(data.Int("character_id"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := b.AccountRepository.GetOrCreate(ctx, target.ID.String(), target.Username); err != nil {
			return errorEmbed(e, "Error", "Failed to load the recipient's account.")
		}

		instance, err := b.TransferEngine.Grant(ctx, target.ID.String(), characterID)
		if err != nil {
			switch {
			case errors.Is(err, economy.ErrNotFound):
				return errorEmbed(e, "Not Found", fmt.Sprintf("No catalog character with ID %d.", characterID))
			case errors.Is(err, economy.ErrLocked):
				return errorEmbed(e, "Locked", "That character is currently locked.")
			default:
				return errorEmbed(e, "Error", "Failed to grant the character.")
			}
		}

		return successEmbed(e, "🛠️ Character Granted",
			fmt.Sprintf("**%s** (%s) %s granted to %s.",
				instance.Name, instance.Anime, rarityStars(instance.Rarity), target.Mention()))
	}
}
