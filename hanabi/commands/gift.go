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
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	"github.com/hanabi-bot/hanabi/hanabi/economy/transfer"
)

var Gift = discord.SlashCommandCreate{
	Name:        "gift",
	Description: "🎁 Gift one of your characters to another user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who to gift the character to",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "character_id",
			Description: "ID of the character to gift",
			Required:    true,
		},
	},
}

func GiftHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		characterID := int64(data.Int("character_id"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := b.AccountRepository.GetOrCreate(ctx, target.ID.String(), target.Username); err != nil {
			return errorEmbed(e, "Error", "Failed to load the recipient's account.")
		}

		token, err := b.TransferEngine.ProposeGift(ctx, e.User().ID.String(), target.ID.String(), characterID)
		if err != nil {
			return giftErrorEmbed(e, err)
		}

		entry, err := b.CatalogRepository.Get(ctx, characterID)
		name := fmt.Sprintf("#%d", characterID)
		if err == nil {
			name = fmt.Sprintf("**%s** (%s)", entry.Name, entry.Anime)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🎁 Confirm Gift",
				Description: fmt.Sprintf("Gift %s to %s?\n\nOnly you can confirm or cancel this gift.",
					name, target.Mention()),
				Color: config.InfoColor,
			}},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewSuccessButton("Confirm", "/gift/confirm/"+token.Encode()),
					discord.NewDangerButton("Cancel", "/gift/cancel/"+token.Encode()),
				),
			},
		})
	}
}

// GiftButtonHandler routes /gift/confirm/<token> and /gift/cancel/<token>.
// The token carries the whole proposal, so a restart between propose and
// confirm loses nothing.
func GiftButtonHandler(b *hanabi.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		data, ok := e.Data.(discord.ButtonInteractionData)
		if !ok {
			return fmt.Errorf("invalid interaction type")
		}

		rest := strings.TrimPrefix(data.CustomID(), "/gift/")
		action, rawToken, found := strings.Cut(rest, "/")
		if !found {
			return componentErrorEmbed(e, "Malformed gift interaction.")
		}

		token, err := transfer.ParseToken(rawToken)
		if err != nil {
			return componentErrorEmbed(e, "This gift proposal is no longer valid.")
		}

		invokerID := e.User().ID.String()

		switch action {
		case "cancel":
			if err := b.TransferEngine.CancelGift(invokerID, token); err != nil {
				return componentErrorEmbed(e, "Only the sender can cancel this gift.")
			}
			return e.UpdateMessage(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "Gift cancelled.",
					Color:       config.WarningColor,
				}},
				Components: &[]discord.ContainerComponent{},
			})

		case "confirm":
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			instance, err := b.TransferEngine.ConfirmGift(ctx, invokerID, token)
			if err != nil {
				return giftConfirmError(e, err)
			}

			return e.UpdateMessage(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Title: "🎁 Gift Delivered",
					Description: fmt.Sprintf("**%s** (%s) %s now belongs to <@%s>.",
						instance.Name, instance.Anime, rarityStars(instance.Rarity), token.RecipientID),
					Color: rarityColor(instance.Rarity),
				}},
				Components: &[]discord.ContainerComponent{},
			})

		default:
			return componentErrorEmbed(e, "Unknown gift action.")
		}
	}
}

func giftErrorEmbed(e *handler.CommandEvent, err error) error {
	var cdErr *economy.CooldownActiveError
	switch {
	case errors.Is(err, economy.ErrSelfTransfer):
		return errorEmbed(e, "Nope", "You can't gift characters to yourself.")
	case errors.Is(err, economy.ErrNotFound):
		return errorEmbed(e, "Not Found", "You don't own that character, or the recipient has no account yet.")
	case errors.As(err, &cdErr):
		return errorEmbed(e, "Slow Down", fmt.Sprintf("Please wait %s before gifting again.", cdErr.Remaining.Round(time.Second)))
	default:
		return errorEmbed(e, "Error", "Failed to propose the gift. Please try again later.")
	}
}

func giftConfirmError(e *handler.ComponentEvent, err error) error {
	var cdErr *economy.CooldownActiveError
	var storageErr *economy.StorageError
	switch {
	case errors.Is(err, economy.ErrUnauthorized):
		return componentErrorEmbed(e, "Only the sender can confirm this gift.")
	case errors.Is(err, economy.ErrLocked):
		return componentErrorEmbed(e, "This character is locked and can't change hands right now.")
	case errors.Is(err, economy.ErrNotFound):
		return componentErrorEmbed(e, "The character is no longer in the sender's collection.")
	case errors.As(err, &cdErr):
		return componentErrorEmbed(e, fmt.Sprintf("Please wait %s before gifting again.", cdErr.Remaining.Round(time.Second)))
	case errors.As(err, &storageErr):
		return componentErrorEmbed(e, "The gift could not be completed. Staff have been notified.")
	default:
		return componentErrorEmbed(e, "Failed to complete the gift. Please try again later.")
	}
}
