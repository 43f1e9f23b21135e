package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hanabi-bot/hanabi/hanabi"
	"github.com/hanabi-bot/hanabi/hanabi/config"
)

var Search = discord.SlashCommandCreate{
	Name:        "search",
	Description: "🔍 Search the character catalog",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "query",
			Description: "Character or series name",
			Required:    true,
		},
	},
}

func SearchHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		query := strings.TrimSpace(e.SlashCommandInteractionData().String("query"))

		ctx, cancel := context.WithTimeout(context.Background(), config.SearchTimeout)
		defer cancel()

		results, err := b.SearchService.Search(ctx, query, config.DefaultPageSize)
		if err != nil {
			return errorEmbed(e, "Error", "Search failed. Please try again later.")
		}
		if len(results) == 0 {
			return errorEmbed(e, "No Matches", fmt.Sprintf("Nothing in the catalog matches `%s`.", query))
		}

		var description strings.Builder
		description.WriteString(fmt.Sprintf("🔍 `%s`\n\n", query))
		for _, entry := range results {
			locked := ""
			if entry.Locked {
				locked = " 🔒"
			}
			description.WriteString(fmt.Sprintf("`#%d` **%s** (%s) %s%s\n",
				entry.ID, entry.Name, entry.Anime, rarityStars(entry.Rarity), locked))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🔍 Catalog Search",
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
