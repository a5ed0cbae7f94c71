package services

import "context"

// Generator produces description text from product inputs via a language model.
type Generator interface {
	// GenerateText produces a description from free-text product info,
	// optionally continuing from prior thread context.
	GenerateText(ctx context.Context, productInfo, style string, priorContext []string) (string, error)

	// GenerateFromImage produces a description from product image bytes.
	GenerateFromImage(ctx context.Context, imageData []byte, imageFormat, style, prompt string) (string, error)
}

// MailSender delivers transactional email.
type MailSender interface {
	// SendResetCode mails a plaintext password reset code to the recipient.
	SendResetCode(ctx context.Context, recipient, code string) error
}

// ImageStore persists uploaded binary assets and returns public URLs.
type ImageStore interface {
	// SaveImage stores image bytes under a generated key and returns the
	// public URL or path.
	SaveImage(ctx context.Context, data []byte, contentType string) (string, error)

	// SaveAvatar resizes and stores a user avatar, returning the public URL.
	SaveAvatar(ctx context.Context, userID string, data []byte, contentType string) (string, error)
}

// SpeechSynthesizer converts description text to spoken audio.
type SpeechSynthesizer interface {
	// Synthesize renders text to audio bytes, returning the audio content
	// type alongside the data.
	Synthesize(ctx context.Context, text, voice string) ([]byte, string, error)
}
