package video

// CreateVideoRequest for POST /videos
type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Src         string `json:"src" validate:"required,url"`
	Length      string `json:"length" validate:"omitempty,max=16"`
	Thumb       string `json:"thumb" validate:"omitempty,max=2048"`
	ChannelName string `json:"channelName" validate:"omitempty,max=100"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,max=2048"`
}

// UpdateVideoRequest for PUT /videos/{id} (partial update)
type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Src         *string `json:"src" validate:"omitempty,url"`
	Length      *string `json:"length" validate:"omitempty,max=16"`
	Thumb       *string `json:"thumb" validate:"omitempty,max=2048"`
	ChannelName *string `json:"channelName" validate:"omitempty,max=100"`
}

// LikeResponse reports the new like state
type LikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// SaveResponse reports the new save state
type SaveResponse struct {
	Saved bool `json:"saved"`
}

// WatchResponse reports the view count after a watch event
type WatchResponse struct {
	Watched bool `json:"watched"`
	Views   int  `json:"views"`
}
