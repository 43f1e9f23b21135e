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

var GiftAll = discord.SlashCommandCreate{
	Name:        "giftall",
	Description: "📦 Gift your entire collection to another user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who receives your collection",
			Required:    true,
		},
	},
}

func GiftAllHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		target := e.SlashCommandInteractionData().User("user")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := b.AccountRepository.GetOrCreate(ctx, target.ID.String(), target.Username); err != nil {
			return errorEmbed(e, "Error", "Failed to load the recipient's account.")
		}

		moved, err := b.TransferEngine.GrantAll(ctx, e.User().ID.String(), target.ID.String())
		if err != nil {
			var storageErr *economy.StorageError
			switch {
			case errors.Is(err, economy.ErrSelfTransfer):
				return errorEmbed(e, "Nope", "You can't gift your collection to yourself.")
			case errors.Is(err, economy.ErrNotFound):
				return errorEmbed(e, "Not Found", "The recipient has no account yet.")
			case errors.As(err, &storageErr):
				return errorEmbed(e, "Error", "The transfer did not fully complete. Staff have been notified.")
			default:
				return errorEmbed(e, "Error", "Failed to transfer your collection.")
			}
		}

		if moved == 0 {
			return errorEmbed(e, "Empty Collection", "You have no characters to gift.")
		}

		return successEmbed(e, "📦 Collection Gifted",
			fmt.Sprintf("Moved **%d** characters to %s.", moved, target.Mention()))
	}
}
