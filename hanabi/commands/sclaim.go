package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/hanabi-bot/hanabi/hanabi"
	"github.com/hanabi-bot/hanabi/hanabi/config"
	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/economy/cooldown"
)

var SClaim = discord.SlashCommandCreate{
	Name:        "sclaim",
	Description: "✨ Claim your daily special: a rare character plus bonus coins",
}

func SClaimHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		userID := e.User().ID.String()

		if remaining := b.Cooldowns.Check(userID, cooldown.ActionSpecial); remaining > 0 {
			return errorEmbed(e, "Not Yet",
				fmt.Sprintf("Your next special claim unlocks in %s.", remaining.Round(time.Second)))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if _, err := b.AccountRepository.GetOrCreate(ctx, userID, e.User().Username); err != nil {
			return errorEmbed(e, "Error", "Failed to load your account.")
		}

		entries, err := b.CatalogRepository.SampleRandom(ctx, 1, config.SpecialClaimMinRarity)
		if err != nil || len(entries) == 0 {
			return errorEmbed(e, "Error", "No characters are available right now. Try again later.")
		}
		entry := entries[0]

		instance := models.Snapshot(entry, models.ObtainedSpecial)
		instance.AccountID = userID
		if err := b.AccountRepository.AddCharacter(ctx, instance); err != nil {
			return errorEmbed(e, "Error", "Failed to deliver your special claim.")
		}

		// The claim is consumed once the character lands, bonus or not.
		specialCooldown := config.SpecialCooldown
		if b.Cfg.Cooldown.SpecialSeconds > 0 {
			specialCooldown = time.Duration(b.Cfg.Cooldown.SpecialSeconds) * time.Second
		}
		b.Cooldowns.Arm(userID, cooldown.ActionSpecial, specialCooldown)

		if err := b.AccountRepository.AdjustBalance(ctx, userID, config.SpecialClaimReward, false); err != nil {
			// The character landed; only the bonus failed. Report the partial.
			return successEmbed(e, "✨ Special Claim",
				fmt.Sprintf("**%s** (%s) %s joined your collection, but the coin bonus failed to apply.",
					entry.Name, entry.Anime, rarityStars(entry.Rarity)))
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "✨ Special Claim",
				Description: fmt.Sprintf("**%s** (%s) %s joined your collection!\nBonus: **%d** coins.",
					entry.Name, entry.Anime, rarityStars(entry.Rarity), config.SpecialClaimReward),
				Color: rarityColor(entry.Rarity),
				Image: shopImage(entry.ImageURL),
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Requested by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}
