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

var Redeem = discord.SlashCommandCreate{
	Name:        "redeem",
	Description: "🎟️ Redeem a reward code",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "code",
			Description: "The code to redeem",
			Required:    true,
		},
	},
}

func RedeemHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		rawCode := e.SlashCommandInteractionData().String("code")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		code, err := b.RedeemEngine.Redeem(ctx, e.User().ID.String(), e.User().Username, rawCode)
		if err != nil {
			var cdErr *economy.CooldownActiveError
			var storageErr *economy.StorageError
			switch {
			case errors.Is(err, economy.ErrNotFound):
				return errorEmbed(e, "Invalid Code", "That code doesn't exist. Check for typos.")
			case errors.Is(err, economy.ErrExpired):
				return errorEmbed(e, "Expired", "That code has expired.")
			case errors.Is(err, economy.ErrAlreadyRedeemed):
				return errorEmbed(e, "Already Redeemed", "You've already redeemed that code.")
			case errors.Is(err, economy.ErrMaxUsesReached):
				return errorEmbed(e, "Fully Redeemed", "That code has reached its redemption limit.")
			case errors.Is(err, economy.ErrUnsupported):
				return errorEmbed(e, "Unsupported", "That code's reward type isn't supported yet.")
			case errors.As(err, &cdErr):
				return errorEmbed(e, "Slow Down", fmt.Sprintf("Please wait %s before redeeming again.", cdErr.Remaining.Round(time.Second)))
			case errors.As(err, &storageErr):
				return errorEmbed(e, "Error", "The redemption could not be completed. Please try again.")
			default:
				return errorEmbed(e, "Error", "Failed to redeem the code. Please try again later.")
			}
		}

		return successEmbed(e, "🎟️ Code Redeemed",
			fmt.Sprintf("You received **%d** coins!", code.RewardAmount))
	}
}
