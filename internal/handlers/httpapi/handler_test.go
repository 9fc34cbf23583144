package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/archerylive/shootlive/internal/models"
	"github.com/archerylive/shootlive/internal/notifier"
	shootRepo "github.com/archerylive/shootlive/internal/repositories/shoot"
	"github.com/archerylive/shootlive/internal/services/endtracking"
	shootService "github.com/archerylive/shootlive/internal/services/shoot"
)

// HandlerTestSuite wires the real service stack onto the in-memory backends
// and exercises the API end to end through the router.
type HandlerTestSuite struct {
	suite.Suite
	hub    *notifier.Hub
	server *httptest.Server
}

func (s *HandlerTestSuite) SetupTest() {
	s.hub = notifier.NewHub(nil)

	repo := shootRepo.NewMemory(nil)

	svc, err := shootService.New(&shootService.Config{
		ShootRepo: repo,
		Notifier:  s.hub,
	})
	s.Require().NoError(err)

	tracking, err := endtracking.New(&endtracking.Config{
		ShootRepo: repo,
		Notifier:  s.hub,
	})
	s.Require().NoError(err)

	handler, err := New(&Config{
		ShootService: svc,
		EndTracking:  tracking,
		Hub:          s.hub,
	})
	s.Require().NoError(err)

	s.server = httptest.NewServer(handler.Routes())
}

func (s *HandlerTestSuite) TearDownTest() {
	s.server.Close()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) postJSON(path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(payload))
	s.Require().NoError(err)
	return resp
}

func (s *HandlerTestSuite) putJSON(path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPut, s.server.URL+path, bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *HandlerTestSuite) decodeBody(resp *http.Response, v any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

// createShoot drives the API to start a shoot and returns its join code
func (s *HandlerTestSuite) createShoot() string {
	resp := s.postJSON("/api/shoots", map[string]string{
		"creatorName": "Alice",
		"title":       "Club Night",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created createShootResponse
	s.decodeBody(resp, &created)
	s.Require().Len(created.Code, 4)
	return created.Code
}

func (s *HandlerTestSuite) joinShoot(code, archer string) {
	resp := s.postJSON(fmt.Sprintf("/api/shoots/%s/join", code), map[string]string{
		"archerName": archer,
		"roundName":  "Windsor",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *HandlerTestSuite) TestHealth() {
	resp, err := http.Get(s.server.URL + "/health")
	s.Require().NoError(err)

	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	s.decodeBody(resp, &body)
	s.Equal("ok", body["status"])
}

func (s *HandlerTestSuite) TestCreateJoinAndScoreFlow() {
	code := s.createShoot()
	s.joinShoot(code, "Alice")
	s.joinShoot(code, "Bob")

	resp := s.putJSON(fmt.Sprintf("/api/shoots/%s/score", code), map[string]any{
		"archerName": "Bob",
		"totalScore": 54,
		"arrowsShot": 6,
		"roundName":  "Windsor",
		"scores":     []any{9, 9, "X", 9, 9, 8},
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var scored shootResponse
	s.decodeBody(resp, &scored)
	s.True(scored.Success)
	s.Require().NotNil(scored.Shoot)
	s.Equal(1, scored.Shoot.ParticipantByName("Bob").CurrentPosition)

	getResp, err := http.Get(fmt.Sprintf("%s/api/shoots/%s", s.server.URL, code))
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, getResp.StatusCode)

	var current models.Shoot
	s.decodeBody(getResp, &current)
	s.Len(current.Participants, 2)
	s.Equal(54, current.ParticipantByName("Bob").TotalScore)
	s.Equal([]models.ArrowValue{
		models.Arrow(9), models.Arrow(9), models.ArrowSymbol("X"),
		models.Arrow(9), models.Arrow(9), models.Arrow(8),
	}, current.ParticipantByName("Bob").Scores)
}

func (s *HandlerTestSuite) TestCreateShootRequiresCreatorName() {
	resp := s.postJSON("/api/shoots", map[string]string{"title": "No creator"})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerTestSuite) TestMalformedCodeIsRejected() {
	resp := s.postJSON("/api/shoots/12ab/join", map[string]string{"archerName": "Alice"})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *HandlerTestSuite) TestUnknownShootIsNotFound() {
	resp, err := http.Get(s.server.URL + "/api/shoots/0000")
	s.Require().NoError(err)
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)

	joinResp := s.postJSON("/api/shoots/0000/join", map[string]string{"archerName": "Alice"})
	s.Require().Equal(http.StatusNotFound, joinResp.StatusCode)

	var joined shootResponse
	s.decodeBody(joinResp, &joined)
	s.False(joined.Success)
}

func (s *HandlerTestSuite) TestFinishShoot() {
	code := s.createShoot()
	s.joinShoot(code, "Alice")

	resp := s.postJSON(fmt.Sprintf("/api/shoots/%s/finish", code), map[string]any{
		"archerName": "Alice",
		"totalScore": 100,
		"arrowsShot": 36,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var finished shootResponse
	s.decodeBody(resp, &finished)
	s.True(finished.Success)
	s.True(finished.Shoot.ParticipantByName("Alice").Finished)

	// A plain update is now rejected
	updateResp := s.putJSON(fmt.Sprintf("/api/shoots/%s/score", code), map[string]any{
		"archerName": "Alice",
		"totalScore": 90,
	})
	defer updateResp.Body.Close()
	s.Equal(http.StatusNotFound, updateResp.StatusCode)
}

func (s *HandlerTestSuite) TestLeaveShoot() {
	code := s.createShoot()
	s.joinShoot(code, "Alice")

	resp := s.postJSON(fmt.Sprintf("/api/shoots/%s/leave", code), map[string]string{
		"archerName": "Alice",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	getResp, err := http.Get(fmt.Sprintf("%s/api/shoots/%s", s.server.URL, code))
	s.Require().NoError(err)

	var current models.Shoot
	s.decodeBody(getResp, &current)
	s.Empty(current.Participants)
}

func (s *HandlerTestSuite) TestTrackEndCadence() {
	code := s.createShoot()
	s.joinShoot(code, "Alice")

	first := s.postJSON(fmt.Sprintf("/api/shoots/%s/end", code), map[string]string{
		"archerName": "Alice",
	})
	s.Require().Equal(http.StatusOK, first.StatusCode)

	var tracked trackEndResponse
	s.decodeBody(first, &tracked)
	s.Equal(1, tracked.EndsCompleted)
	s.False(tracked.Notified)

	second := s.postJSON(fmt.Sprintf("/api/shoots/%s/end", code), map[string]string{
		"archerName": "Alice",
	})
	s.Require().Equal(http.StatusOK, second.StatusCode)

	s.decodeBody(second, &tracked)
	s.Equal(2, tracked.EndsCompleted)
	s.True(tracked.Notified)
}

func (s *HandlerTestSuite) TestLiveStreamDeliversScoreUpdates() {
	code := s.createShoot()
	s.joinShoot(code, "Alice")

	wsURL := "ws" + strings.TrimPrefix(s.server.URL, "http") + fmt.Sprintf("/api/shoots/%s/live", code)
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	s.Require().NoError(err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	s.Require().Eventually(func() bool {
		return s.hub.SubscriberCount(code) > 0
	}, time.Second, 10*time.Millisecond)

	scoreResp := s.putJSON(fmt.Sprintf("/api/shoots/%s/score", code), map[string]any{
		"archerName": "Alice",
		"totalScore": 42,
	})
	s.Require().Equal(http.StatusOK, scoreResp.StatusCode)
	scoreResp.Body.Close()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, payload, err := conn.ReadMessage()
	s.Require().NoError(err)

	var event models.Notification
	s.Require().NoError(json.Unmarshal(payload, &event))
	s.Equal(models.NotificationScoreUpdate, event.Type)
	s.Equal("Alice", event.ArcherName)
	s.Require().NotNil(event.Shoot)
	s.Equal(42, event.Shoot.ParticipantByName("Alice").TotalScore)
}

func (s *HandlerTestSuite) TestLiveStreamUnknownShoot() {
	wsURL := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/api/shoots/0000/live"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	s.Error(err)
	if conn != nil {
		conn.Close()
	}
	s.Require().NotNil(resp)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
