package sound

import (
	"fmt"
	"io"
	"net/http"

	"sounddeck/internal/catalog"
	"sounddeck/internal/core"

	"github.com/bwmarrin/discordgo"
	humanize "github.com/dustin/go-humanize"
)

type UploadCommand struct {
	Uploader *catalog.Uploader
}

func (c *UploadCommand) Name() string        { return "upload" }
func (c *UploadCommand) Description() string { return "Upload a sound file (optionally named and trimmed)" }
func (c *UploadCommand) Group() string       { return groupSound }
func (c *UploadCommand) Category() string    { return "🔊 Soundboard" }

func (c *UploadCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionAttachment,
				Name:        "attachment",
				Description: "Audio file (.mp3, .wav, .ogg, .opus)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "name",
				Description: "Name for the sound (defaults to the filename)",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "start_time",
				Description: "Trim start in seconds",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        "end_time",
				Description: "Trim end in seconds",
				Required:    false,
			},
		},
	}
}

func (c *UploadCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*core.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	data := event.ApplicationCommandData()

	var attachmentID, name string
	var start, end *float64
	for _, opt := range data.Options {
		switch opt.Name {
		case "attachment":
			attachmentID = opt.Value.(string)
		case "name":
			name = opt.StringValue()
		case "start_time":
			v := opt.FloatValue()
			start = &v
		case "end_time":
			v := opt.FloatValue()
			end = &v
		}
	}

	attachment, ok := data.Resolved.Attachments[attachmentID]
	if !ok {
		return core.RespondEphemeral(session, event, "Attachment is missing.")
	}

	// Downloading and trimming can outlive the 3s interaction window.
	if err := session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		return fmt.Errorf("failed to defer response: %w", err)
	}

	body, err := fetchAttachment(attachment.URL)
	if err != nil {
		return core.FollowupEphemeral(session, event, fmt.Sprintf("Failed to download attachment: %v", err))
	}
	defer body.Close()

	sound, err := c.Uploader.Save(catalog.Upload{
		Filename: attachment.Filename,
		Size:     int64(attachment.Size),
		Name:     name,
		Start:    start,
		End:      end,
		Body:     body,
	})
	if err != nil {
		// Covers the trim-failure case too: the untrimmed clip was kept
		// and userMessage says so.
		return core.FollowupEphemeral(session, event, userMessage(err))
	}

	return core.FollowupEphemeral(session, event,
		fmt.Sprintf("Saved: %s (%s)", sound.Name, humanize.Bytes(uint64(attachment.Size))))
}

// fetchAttachment downloads the attachment body. Anything but a 200 is an
// error: a CDN error page must never end up in the catalog as a sound.
func fetchAttachment(url string) (io.ReadCloser, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected response: %s", resp.Status)
	}
	return resp.Body, nil
}
