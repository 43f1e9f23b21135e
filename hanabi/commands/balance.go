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

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "💰 View your current coin balance and collection size",
}

func BalanceHandler(b *hanabi.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		account, err := b.AccountRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
		if err != nil {
			return errorEmbed(e, "Error", "Failed to fetch your balance. Please try again later.")
		}

		characters, err := b.AccountRepository.GetCharacters(ctx, account.DiscordID)
		if err != nil {
			return errorEmbed(e, "Error", "Failed to fetch your collection. Please try again later.")
		}

		description := fmt.Sprintf("```ansi\n"+
			"\x1b[1;36mBalance:\x1b[0m %d coins\n"+
			"\x1b[0;37m%s\x1b[0m\n"+
			"\n"+
			"\x1b[1;35mCharacters:\x1b[0m %d\n"+
			"```",
			account.Balance,
			createBalanceBar(account.Balance),
			len(characters),
		)

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "💰 Balance",
				Description: description,
				Color:       config.SuccessColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Requested by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}

func createBalanceBar(balance int64) string {
	const barLength = 10

	var milestone int64 = 1000000
	if balance < 100000 {
		milestone = 100000
	} else if balance < 500000 {
		milestone = 500000
	}

	progress := float64(balance) / float64(milestone)
	if progress > 1.0 {
		progress = 1.0
	}
	filled := int(progress * float64(barLength))

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < barLength; i++ {
		if i < filled {
			bar.WriteString("■")
		} else {
			bar.WriteString("□")
		}
	}
	bar.WriteString(fmt.Sprintf("] %.1f%%", progress*100))

	return bar.String()
}
