package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leaverequest"
	"github.com/amasqis/hrms/modules/hrm/domain/aggregates/leavetype"
	"github.com/amasqis/hrms/pkg/application"
	"github.com/amasqis/hrms/pkg/eventbus"
	"github.com/amasqis/hrms/pkg/ws"
)

func TestLeaveApprovalBroadcastsToSockets(t *testing.T) {
	hub := ws.NewHub(&ws.HubOptions{
		Logger:          logrus.New(),
		CheckOrigin:     func(r *http.Request) bool { return true },
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	})
	app := application.New(&application.ApplicationOptions{
		EventPublisher: eventbus.NewEventPublisher(logrus.New()),
		Hub:            hub,
		Logger:         logrus.New(),
	})
	RegisterSocketHandlers(app)

	srv := httptest.NewServer(hub)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	annual := leavetype.Hydrate(uuid.New(), "Annual", leavetype.CodeAnnual, 20, leavetype.StatusActive, time.Now(), time.Now())
	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	approved := leaveFixture(t, annual, leaverequest.StatusApproved, day, day)

	app.EventPublisher().Publish(&leaverequest.ApprovedEvent{Result: approved})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var frame map[string]any
	require.NoError(t, json.Unmarshal(raw, &frame))
	require.Equal(t, "leaves/leave-approved", frame["event"])
}
