package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hanabi-bot/hanabi/hanabi"
	"github.com/hanabi-bot/hanabi/hanabi/database/models"
)

const maxImageSize = 8 * 1024 * 1024

var Upload = discord.SlashCommandCreate{
	Name:        "upload",
	Description: "🛠️ Add or update a catalog character (admin only)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "character_id",
			Description: "Catalog ID (reusing an existing ID updates it)",
			Required:    true,
			MinValue:    intPtr(1),
		},
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Character name",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "anime",
			Description: "Series the character is from",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "rarity",
			Description: fmt.Sprintf("Rarity tier (1-%d)", models.MaxRarity),
			Required:    true,
			MinValue:    intPtr(1),
			MaxValue:    intPtr(models.MaxRarity),
		},
		discord.ApplicationCommandOptionAttachment{
			Name:        "image",
			Description: "Character image",
			Required:    true,
		},
	},
}

func UploadHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return errorEmbed(e, "Unauthorized", "This command is restricted to bot admins.")
		}

		data := e.SlashCommandInteractionData()
		characterID := int64(data.Int("character_id"))
		name := data.String("name")
		anime := data.String("anime")
		rarity := data.Int("rarity")
		attachment := data.Attachment("image")

		if attachment.Size > maxImageSize {
			return errorEmbed(e, "Too Large", fmt.Sprintf("Images must be under %dMB.", maxImageSize/1024/1024))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		imageData, err := downloadAttachment(ctx, attachment.URL)
		if err != nil {
			return errorEmbed(e, "Error", "Failed to download the image.")
		}

		contentType := "image/jpeg"
		if attachment.ContentType != nil {
			contentType = *attachment.ContentType
		}

		imageURL, err := b.SpacesService.UploadCharacterImage(ctx, characterID, imageData, contentType)
		if err != nil {
			return errorEmbed(e, "Error", "Failed to store the image.")
		}

		entry := &models.CatalogEntry{
			ID:       characterID,
			Name:     name,
			Anime:    anime,
			Rarity:   rarity,
			ImageURL: imageURL,
		}
		if err := b.CatalogRepository.Upsert(ctx, entry); err != nil {
			return errorEmbed(e, "Error", "Failed to save the catalog entry.")
		}

		return successEmbed(e, "🛠️ Catalog Updated",
			fmt.Sprintf("`#%d` **%s** (%s) %s is now in the catalog.", characterID, name, anime, rarityStars(rarity)))
	}
}

func downloadAttachment(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
}
