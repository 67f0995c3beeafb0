package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	bCtx "github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	"github.com/x-xyz/yieldfarm/domain/farm"
)

var severityColors = map[farm.Severity]int{
	farm.SeverityInfo:    0x3498db,
	farm.SeveritySuccess: 0x2ecc71,
	farm.SeverityWarning: 0xf1c40f,
	farm.SeverityError:   0xe74c3c,
}

var severityRank = map[farm.Severity]int{
	farm.SeverityInfo:    0,
	farm.SeveritySuccess: 1,
	farm.SeverityWarning: 2,
	farm.SeverityError:   3,
}

type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

type DiscordCfg struct {
	BotKey    string
	ChannelId string
	// MinSeverity drops less severe notices, empty forwards everything
	MinSeverity farm.Severity
}

type discordSink struct {
	channelId   string
	minSeverity farm.Severity
	discord     embedSender
}

func NewDiscordSink(cfg DiscordCfg) (farm.NotificationSink, error) {
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.BotKey))
	if err != nil {
		return nil, err
	}
	return newDiscordSink(cfg, discord), nil
}

func newDiscordSink(cfg DiscordCfg, discord embedSender) *discordSink {
	return &discordSink{
		channelId:   cfg.ChannelId,
		minSeverity: cfg.MinSeverity,
		discord:     discord,
	}
}

func (d *discordSink) Notify(ctx bCtx.Ctx, message string, severity farm.Severity) {
	if severityRank[severity] < severityRank[d.minSeverity] {
		return
	}
	msg := &discordgo.MessageEmbed{
		Title:       string(severity),
		Description: message,
		Color:       severityColors[severity],
	}
	if wallet := bCtx.Value(ctx, "wallet"); wallet != nil {
		msg.Fields = []*discordgo.MessageEmbedField{
			{Name: "Wallet", Value: fmt.Sprint(wallet)},
		}
	}
	if _, err := d.discord.ChannelMessageSendEmbed(d.channelId, msg); err != nil {
		ctx.WithFields(log.Fields{
			"channelId": d.channelId,
			"err":       err,
		}).Warn("discord.ChannelMessageSendEmbed failed")
	}
}
