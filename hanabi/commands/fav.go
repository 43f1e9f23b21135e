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

var Fav = discord.SlashCommandCreate{
	Name:        "fav",
	Description: "❤️ Mark or unmark a character as a favorite",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "character_id",
			Description: "Catalog ID of the character",
			Required:    true,
		},
		discord.ApplicationCommandOptionBool{
			Name:        "remove",
			Description: "Remove the favorite instead of adding it",
			Required:    false,
		},
	},
}

func FavHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		characterID := int64(data.Int("character_id"))
		remove := data.Bool("remove")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		userID := e.User().ID.String()
		if _, err := b.AccountRepository.GetOrCreate(ctx, userID, e.User().Username); err != nil {
			return errorEmbed(e, "Error", "Failed to load your account.")
		}

		if !remove {
			// Favorites only make sense for characters the user owns.
			count, err := b.AccountRepository.CountCharacter(ctx, userID, characterID)
			if err != nil {
				return errorEmbed(e, "Error", "Failed to check your collection.")
			}
			if count == 0 {
				return errorEmbed(e, "Not Owned", "You can only favorite characters you own.")
			}
		}

		if err := b.AccountRepository.SetFavorite(ctx, userID, characterID, !remove); err != nil {
			if errors.Is(err, economy.ErrNotFound) {
				return errorEmbed(e, "Error", "Your account could not be found.")
			}
			return errorEmbed(e, "Error", "Failed to update your favorites.")
		}

		if remove {
			return successEmbed(e, "💔 Favorite Removed", fmt.Sprintf("Character #%d is no longer a favorite.", characterID))
		}
		return successEmbed(e, "❤️ Favorite Added", fmt.Sprintf("Character #%d is now a favorite.", characterID))
	}
}
