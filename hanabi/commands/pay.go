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

var Pay = discord.SlashCommandCreate{
	Name:        "pay",
	Description: "💸 Send coins to another user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who to pay",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "How many coins to send",
			Required:    true,
			MinValue:    intPtr(1),
		},
	},
}

func PayHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount := int64(data.Int("amount"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := b.AccountRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username); err != nil {
			return errorEmbed(e, "Error", "Failed to load your account. Please try again later.")
		}
		if _, err := b.AccountRepository.GetOrCreate(ctx, target.ID.String(), target.Username); err != nil {
			return errorEmbed(e, "Error", "Failed to load the recipient's account.")
		}

		err := b.TransferEngine.Pay(ctx, e.User().ID.String(), target.ID.String(), amount)
		if err != nil {
			var cdErr *economy.CooldownActiveError
			switch {
			case errors.Is(err, economy.ErrSelfTransfer):
				return errorEmbed(e, "Nope", "You can't pay yourself.")
			case errors.Is(err, economy.ErrInsufficientFunds):
				return errorEmbed(e, "Insufficient Funds", "You don't have enough coins for that.")
			case errors.As(err, &cdErr):
				return errorEmbed(e, "Slow Down", fmt.Sprintf("Please wait %s before paying again.", cdErr.Remaining.Round(time.Second)))
			default:
				return errorEmbed(e, "Error", "Failed to process payment. Please try again later.")
			}
		}

		return successEmbed(e, "💸 Payment Sent",
			fmt.Sprintf("Sent **%d** coins to %s.", amount, target.Mention()))
	}
}

func intPtr(v int) *int {
	return &v
}
