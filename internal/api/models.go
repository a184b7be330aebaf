package api

// Request and response models for the deck and media endpoints. Fields whose
// zero value is meaningful (indices, booleans) are pointers so "required" can
// distinguish absent from zero.

// UpdateStatusRequest marks one card as learned or not learned.
type UpdateStatusRequest struct {
	Category string `json:"category"       validate:"required"`
	Deck     string `json:"deck"           validate:"required"`
	Index    *int   `json:"index"          validate:"required,min=0"`
	Learned  *bool  `json:"learned"        validate:"required"`
}

// ResetRequest clears all progress and image references in a deck.
type ResetRequest struct {
	Category string `json:"category" validate:"required"`
	Deck     string `json:"deck"     validate:"required"`
}

// GenerateImageRequest asks for an image for one definition.
type GenerateImageRequest struct {
	Prompt          string `json:"prompt"           validate:"required"`
	Category        string `json:"category"         validate:"required"`
	Deck            string `json:"deck"             validate:"required"`
	Index           *int   `json:"index"            validate:"required,min=0"`
	DefIndex        *int   `json:"def_index"        validate:"required,min=0"`
	ForceGeneration bool   `json:"force_generation"`
}

// DeleteImageRequest removes one definition's image from storage.
type DeleteImageRequest struct {
	Category string `json:"category"  validate:"required"`
	Deck     string `json:"deck"      validate:"required"`
	Index    *int   `json:"index"     validate:"required,min=0"`
	DefIndex *int   `json:"def_index" validate:"required,min=0"`
}

// SynthesizeSpeechRequest asks for audio of a phrase, optionally with a
// spoken tone instruction.
type SynthesizeSpeechRequest struct {
	Category  string `json:"category"   validate:"required"`
	Deck      string `json:"deck"       validate:"required"`
	Text      string `json:"text"       validate:"required"`
	VoiceName string `json:"voice_name" validate:"required"`
	ModelName string `json:"model_name"`
	Tone      string `json:"tone"`
	VerbName  string `json:"verb_name"`
}

// DeckFilesResponse lists the deck files available in a category.
type DeckFilesResponse struct {
	Success    bool     `json:"success"`
	Files      []string `json:"files"`
	ActiveFile string   `json:"active_file"`
}

// StatusResponse is the generic mutation acknowledgement.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ImageResponse reports a stored image asset.
type ImageResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// ImageSkippedResponse reports that no image exists and generation was not
// forced. The expected fields name the asset a forced call would create.
type ImageSkippedResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	FilenameExpected string `json:"filename_expected"`
	PathExpected     string `json:"path_expected"`
}

// SpeechResponse reports a stored audio asset.
type SpeechResponse struct {
	Success  bool   `json:"success"`
	Location string `json:"location"`
}
