package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmvaldez/flashdeck-api/internal/api/shared"
	"github.com/jmvaldez/flashdeck-api/internal/platform/logger"
	"github.com/jmvaldez/flashdeck-api/internal/service/media"
)

// maxUploadBytes bounds multipart image uploads.
const maxUploadBytes = 10 << 20

// MediaService is the media operations surface the handlers depend on.
type MediaService interface {
	GenerateImage(
		ctx context.Context,
		prompt, category, deck string,
		cardIndex, defIndex int,
		force bool,
	) (*media.ImageResult, error)
	UploadImage(
		ctx context.Context,
		category, deck string,
		cardIndex, defIndex int,
		data []byte,
		extension string,
	) (*media.ImageResult, error)
	DeleteImage(ctx context.Context, category, deck string, cardIndex, defIndex int) (string, error)
	SynthesizeSpeech(
		ctx context.Context,
		category, deck, text, voiceName, modelName, tone, verbName string,
	) (*media.AudioResult, error)
}

// MediaHandler handles image and audio endpoints.
type MediaHandler struct {
	media  MediaService
	logger *slog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService MediaService, logger *slog.Logger) *MediaHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MediaHandler")
	}

	return &MediaHandler{
		media:  mediaService,
		logger: logger.With(slog.String("component", "media_handler")),
	}
}

// GenerateImage handles POST /api/generate-image requests. When no image
// exists and force_generation is false, the response is a 404 naming the
// asset a forced call would create.
func (h *MediaHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateImageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.media.GenerateImage(
		r.Context(),
		req.Prompt,
		req.Category,
		req.Deck,
		*req.Index,
		*req.DefIndex,
		req.ForceGeneration,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if result.Skipped {
		log.Debug("image generation omitted",
			slog.String("category", req.Category),
			slog.String("deck", req.Deck),
			slog.Int("index", *req.Index),
			slog.Int("def_index", *req.DefIndex))
		shared.RespondWithJSON(w, r, http.StatusNotFound, ImageSkippedResponse{
			Success:          false,
			Message:          "image generation omitted: no stored image and force_generation is false",
			FilenameExpected: result.Filename,
			PathExpected:     result.Key,
		})
		return
	}

	log.Debug("image ready",
		slog.String("key", result.Key),
		slog.Bool("reused", result.Reused))
	shared.RespondWithJSON(w, r, http.StatusOK, ImageResponse{
		Success:  true,
		Filename: result.Filename,
		Path:     result.Location,
	})
}

// UploadImage handles POST /api/upload-image multipart requests. Uploads
// bypass the generation gate: the stored file always replaces the current
// asset and is cross-referenced into the deck document.
func (h *MediaHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	category := r.FormValue("category")
	deck := r.FormValue("deck")
	if category == "" || deck == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing category or deck field")
		return
	}

	cardIndex, err := strconv.Atoi(r.FormValue("card_index"))
	if err != nil || cardIndex < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card_index field")
		return
	}
	defIndex, err := strconv.Atoi(r.FormValue("def_index"))
	if err != nil || defIndex < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid def_index field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if extension != "jpg" && extension != "jpeg" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unsupported file type, expected jpg or jpeg")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}

	result, err := h.media.UploadImage(r.Context(), category, deck, cardIndex, defIndex, data, extension)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("image uploaded",
		slog.String("key", result.Key),
		slog.Int("bytes", len(data)))
	shared.RespondWithJSON(w, r, http.StatusOK, ImageResponse{
		Success:  true,
		Filename: result.Filename,
		Path:     result.Location,
	})
}

// DeleteImage handles DELETE /api/delete-image requests. Deleting an absent
// image succeeds.
func (h *MediaHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	var req DeleteImageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	message, err := h.media.DeleteImage(r.Context(), req.Category, req.Deck, *req.Index, *req.DefIndex)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Success: true,
		Message: message,
	})
}

// SynthesizeSpeech handles POST /api/synthesize-speech requests.
func (h *MediaHandler) SynthesizeSpeech(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SynthesizeSpeechRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.media.SynthesizeSpeech(
		r.Context(),
		req.Category,
		req.Deck,
		req.Text,
		req.VoiceName,
		req.ModelName,
		req.Tone,
		req.VerbName,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("speech ready",
		slog.String("key", result.Key),
		slog.Bool("reused", result.Reused))
	shared.RespondWithJSON(w, r, http.StatusOK, SpeechResponse{
		Success:  true,
		Location: result.Location,
	})
}
