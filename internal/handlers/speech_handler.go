package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-interviewer/internal/models"
	"alfredoptarigan/ai-interviewer/internal/services"
)

type SpeechHandler struct {
	speech services.SpeechService
}

func NewSpeechHandler(speech services.SpeechService) *SpeechHandler {
	return &SpeechHandler{speech: speech}
}

// HandleTranscription handles POST /speech/transcriptions. The response is
// always 200: a failed transcription tells the client to use its own
// recognition instead.
func (h *SpeechHandler) HandleTranscription(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "audio file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open audio file",
		})
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read audio file",
		})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	result := h.speech.Transcribe(c.UserContext(), audio, mimeType)

	return c.JSON(models.TranscriptionResponse{
		Success:  result.Success,
		Provider: result.Provider,
		Text:     result.Text,
	})
}

// HandleSynthesis handles POST /speech/synthesis. Returns WAV bytes on
// success, or a fallback marker the client acts on.
func (h *SpeechHandler) HandleSynthesis(c *fiber.Ctx) error {
	var req models.SynthesisRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	result := h.speech.Synthesize(c.UserContext(), req.Text)
	if result.UseBrowserFallback {
		return c.JSON(models.SynthesisFallbackResponse{
			UseBrowserFallback: true,
			Provider:           result.Provider,
		})
	}

	c.Set("Content-Type", "audio/wav")
	return c.Send(result.Audio)
}
