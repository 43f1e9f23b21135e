package commands

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/hanabi-bot/hanabi/hanabi"
	"github.com/hanabi-bot/hanabi/hanabi/config"
	"github.com/hanabi-bot/hanabi/hanabi/database/models"
)

var Harem = discord.SlashCommandCreate{
	Name:        "harem",
	Description: "📚 Browse your character collection",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose collection to view (defaults to yours)",
			Required:    false,
		},
	},
}

func HaremHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		owner := e.User()
		if target, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
			owner = target
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		account, err := b.AccountRepository.GetOrCreate(ctx, owner.ID.String(), owner.Username)
		if err != nil {
			return errorEmbed(e, "Error", "Failed to load the collection.")
		}

		characters, err := b.AccountRepository.GetCharacters(ctx, account.DiscordID)
		if err != nil {
			return errorEmbed(e, "Error", "Failed to load the collection.")
		}
		if len(characters) == 0 {
			return errorEmbed(e, "Empty Collection", fmt.Sprintf("%s has no characters yet.", owner.Username))
		}

		favorites := make(map[int64]bool, len(account.Favorites))
		for _, id := range account.Favorites {
			favorites[id] = true
		}

		totalPages := int(math.Ceil(float64(len(characters)) / float64(config.CharactersPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * config.CharactersPerPage
				endIdx := min(startIdx+config.CharactersPerPage, len(characters))

				var description strings.Builder
				for _, instance := range characters[startIdx:endIdx] {
					description.WriteString(formatInstanceEntry(instance, favorites[instance.CharacterID]))
				}

				embed.
					SetTitle(fmt.Sprintf("📚 %s's Collection", owner.Username)).
					SetDescription(description.String()).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d characters", page+1, totalPages, len(characters)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func formatInstanceEntry(instance *models.CharacterInstance, favorite bool) string {
	marker := ""
	if favorite {
		marker = " ❤️"
	}
	return fmt.Sprintf("`#%d` **%s** (%s) %s%s\n",
		instance.CharacterID, instance.Name, instance.Anime, rarityStars(instance.Rarity), marker)
}
