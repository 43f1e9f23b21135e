package commands

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hanabi-bot/hanabi/hanabi/config"
)

var Commands = []discord.ApplicationCommandCreate{
	Balance,
	Pay,
	Gift,
	Give,
	GiftAll,
	Shop,
	Buy,
	Redeem,
	CreateCode,
	ListCodes,
	DeleteCode,
	Lock,
	Unlock,
	Harem,
	Fav,
	SClaim,
	Search,
	Upload,
}

func errorEmbed(e *handler.CommandEvent, title, description string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: description,
			Color:       config.ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

func successEmbed(e *handler.CommandEvent, title, description string) error {
	now := time.Now()
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: description,
			Color:       config.SuccessColor,
			Footer: &discord.EmbedFooter{
				Text: fmt.Sprintf("Requested by %s", e.User().Username),
			},
			Timestamp: &now,
		}},
	})
}

func componentErrorEmbed(e *handler.ComponentEvent, description string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: description,
			Color:       config.ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

func rarityStars(rarity int) string {
	stars := ""
	for i := 0; i < rarity; i++ {
		stars += "★"
	}
	return stars
}

func rarityColor(rarity int) int {
	switch {
	case rarity >= 3:
		return config.RarityLegendaryColor
	case rarity == 2:
		return config.RarityRareColor
	default:
		return config.RarityCommonColor
	}
}
