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
)

var Shop = discord.SlashCommandCreate{
	Name:        "shop",
	Description: "🛒 Browse this channel's character shop",
}

var Buy = discord.SlashCommandCreate{
	Name:        "buy",
	Description: "🛒 Buy a character from this channel's shop",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "slot",
			Description: "Shop slot number to buy",
			Required:    true,
			MinValue:    intPtr(1),
		},
	},
}

func ShopHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		listing, err := b.ShopEngine.GetListing(ctx, e.ChannelID())
		if err != nil {
			return errorEmbed(e, "Error", "Failed to load the shop. Please try again later.")
		}

		if len(listing.Items) == 0 {
			return errorEmbed(e, "Sold Out", "Everything here is sold out. A fresh stock arrives soon.")
		}

		var description strings.Builder
		for i, item := range listing.Items {
			description.WriteString(fmt.Sprintf("`%d.` **%s** (%s) %s — **%d** coins\n",
				i+1, item.Character.Name, item.Character.Anime, rarityStars(item.Character.Rarity), item.Price))
		}

		restock := listing.GeneratedAt.Add(b.ShopEngine.TTL())
		description.WriteString(fmt.Sprintf("\nRestocks <t:%d:R>. Buy with `/buy slot`.", restock.Unix()))

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🛒 Character Shop",
				Description: description.String(),
				Color:       config.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Requested by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}

func BuyHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		slot := e.SlashCommandInteractionData().Int("slot")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := b.AccountRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username); err != nil {
			return errorEmbed(e, "Error", "Failed to load your account.")
		}

		item, err := b.ShopEngine.Purchase(ctx, e.ChannelID(), e.User().ID.String(), slot-1)
		if err != nil {
			var storageErr *economy.StorageError
			switch {
			case errors.Is(err, economy.ErrNotFound):
				return errorEmbed(e, "Not Available", "That slot is empty or was just bought. Check `/shop` again.")
			case errors.Is(err, economy.ErrInsufficientFunds):
				return errorEmbed(e, "Insufficient Funds", "You don't have enough coins for that character.")
			case errors.Is(err, economy.ErrLocked):
				return errorEmbed(e, "Locked", "That character is currently locked and can't be sold.")
			case errors.As(err, &storageErr):
				return errorEmbed(e, "Error", "The purchase could not be completed. Staff have been notified.")
			default:
				return errorEmbed(e, "Error", "Failed to complete the purchase.")
			}
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🛒 Purchase Complete",
				Description: fmt.Sprintf("**%s** (%s) %s is yours for **%d** coins!",
					item.Character.Name, item.Character.Anime, rarityStars(item.Character.Rarity), item.Price),
				Color: rarityColor(item.Character.Rarity),
				Image: shopImage(item.Character.ImageURL),
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Requested by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}

func shopImage(url string) *discord.EmbedResource {
	if url == "" {
		return nil
	}
	return &discord.EmbedResource{URL: url}
}
