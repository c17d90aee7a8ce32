package domain

// Inbound is the payload of a message handed to the conversation
// controller: plain text or one of the supported media kinds. A closed
// set, so every consumer can match exhaustively.
type Inbound interface {
	isInbound()
}

// TextIn is a plain text message.
type TextIn struct {
	Text string
}

// StickerIn carries a sticker reference.
type StickerIn struct {
	FileID string
}

// PhotoIn carries the size variants of a photo, ordered smallest to
// largest as delivered by the platform.
type PhotoIn struct {
	Sizes []string
}

func (TextIn) isInbound()    {}
func (StickerIn) isInbound() {}
func (PhotoIn) isInbound()   {}
