package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	lksdk "github.com/livekit/server-sdk-go/v2"

	"NexiAssistant/app/configs"
	"NexiAssistant/app/runtime"
)

const (
	// transcriptTopic carries final STT transcripts published into the room
	// by the transcription service.
	transcriptTopic = "transcription"
	// speechTopic carries sanitized assistant replies for the TTS egress.
	speechTopic = "tts"
)

// transcriptMessage is the payload the transcription service publishes on
// transcriptTopic.
type transcriptMessage struct {
	Text        string `json:"text"`
	Participant string `json:"participant,omitempty"`
	Final       bool   `json:"final"`
}

var _ Interface = &LiveKitClient{}

// LiveKitClient joins the real-time audio room as the assistant participant.
// STT, TTS and VAD run as external services in the same room; this connector
// only moves text: final transcripts in, sanitized replies out.
type LiveKitClient struct {
	Client
	cfg  configs.SessionConfig
	room *lksdk.Room
}

func NewLiveKitClient(cfg configs.SessionConfig) *LiveKitClient {
	return &LiveKitClient{cfg: cfg}
}

func (c *LiveKitClient) Subscribe(rt *runtime.Runtime) error {
	c.runtime = rt

	room, err := lksdk.ConnectToRoom(c.cfg.URL, lksdk.ConnectInfo{
		APIKey:              c.cfg.APIKey,
		APISecret:           c.cfg.APISecret,
		RoomName:            c.cfg.Room,
		ParticipantIdentity: c.cfg.Identity,
	}, &lksdk.RoomCallback{
		ParticipantCallback: lksdk.ParticipantCallback{
			OnDataPacket: c.onDataPacket,
		},
		OnDisconnected: c.onDisconnected,
	})
	if err != nil {
		return fmt.Errorf("connect to room %s: %w", c.cfg.Room, err)
	}
	c.room = room
	log.Printf("✅ Joined room %s as %s", c.cfg.Room, c.cfg.Identity)

	c.runtime.QueueEvent(runtime.Event{
		Type:      runtime.SessionStarted,
		SessionID: c.sessionID(),
		Say:       c.Say,
	})
	return nil
}

func (c *LiveKitClient) onDataPacket(data lksdk.DataPacket, params lksdk.DataReceiveParams) {
	packet, ok := data.(*lksdk.UserDataPacket)
	if !ok || packet.Topic != transcriptTopic {
		return
	}

	var msg transcriptMessage
	if err := json.Unmarshal(packet.Payload, &msg); err != nil {
		log.Printf("⚠️ Error parsing transcript packet from %s: %v", params.SenderIdentity, err)
		return
	}
	if !msg.Final || msg.Text == "" {
		return
	}

	c.runtime.QueueEvent(runtime.Event{
		Type:      runtime.Transcript,
		SessionID: c.sessionID(),
		Text:      msg.Text,
		Say:       c.Say,
	})
}

func (c *LiveKitClient) onDisconnected() {
	log.Printf("👋 Disconnected from room %s", c.cfg.Room)
	c.runtime.QueueEvent(runtime.Event{
		Type:      runtime.SessionClosed,
		SessionID: c.sessionID(),
	})
}

// Say publishes a sanitized reply on the TTS topic as a reliable data packet.
func (c *LiveKitClient) Say(ctx context.Context, text string) error {
	if c.room == nil {
		return fmt.Errorf("room not connected")
	}
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	return c.room.LocalParticipant.PublishDataPacket(
		lksdk.UserData(payload),
		lksdk.WithDataPublishReliable(true),
		lksdk.WithDataPublishTopic(speechTopic),
	)
}

func (c *LiveKitClient) sessionID() string {
	return c.cfg.Room + "/" + c.cfg.Identity
}

func (c *LiveKitClient) Close() error {
	if c.room != nil {
		c.room.Disconnect()
	}
	return nil
}
