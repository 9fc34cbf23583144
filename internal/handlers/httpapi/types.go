package httpapi

import "github.com/archerylive/shootlive/internal/models"

type createShootRequest struct {
	CreatorName string `json:"creatorName"`
	Title       string `json:"title,omitempty"`
}

type createShootResponse struct {
	Code  string        `json:"code"`
	Shoot *models.Shoot `json:"shoot"`
}

type joinShootRequest struct {
	ArcherName string `json:"archerName"`
	RoundName  string `json:"roundName"`
}

type scoreRequest struct {
	ArcherName     string              `json:"archerName"`
	TotalScore     int                 `json:"totalScore"`
	RoundName      string              `json:"roundName"`
	ArrowsShot     int                 `json:"arrowsShot"`
	Classification string              `json:"classification,omitempty"`
	Scores         []models.ArrowValue `json:"scores,omitempty"`
}

type leaveShootRequest struct {
	ArcherName string `json:"archerName"`
}

type trackEndRequest struct {
	ArcherName string `json:"archerName"`
}

type shootResponse struct {
	Success bool          `json:"success"`
	Shoot   *models.Shoot `json:"shoot,omitempty"`
}

type trackEndResponse struct {
	EndsCompleted int  `json:"endsCompleted"`
	Notified      bool `json:"notified"`
}

type errorResponse struct {
	Error string `json:"error"`
}
