package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"github.com/zeusync/sweepsensor/internal/core/sensor"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics/mock"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics/world"
	"go.uber.org/mock/gomock"
)

func newManager(t *testing.T) (*sensor.Manager, *world.World) {
	t.Helper()
	w := world.New()
	m := sensor.NewManager()

	for _, name := range []string{"front", "rear"} {
		rot := mgl64.QuatIdent()
		if name == "rear" {
			rot = physics.TransformFromEuler(mgl64.Vec3{}, 0, 180, 0).Rot
		}
		s, err := sensor.New(name, sensor.Config{
			Mask:   physics.AllLayers,
			Length: 10,
			Shape:  sensor.LineCast{},
		}, physics.NewTransform3D(mgl64.Vec3{}, rot), w)
		require.NoError(t, err)
		require.NoError(t, m.Add(s))
	}
	return m, w
}

func wsURL(s *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(s.URL, "http") + path
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServer_Sensors(t *testing.T) {
	m, w := newManager(t)
	_, err := w.Add(world.NewBox(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{1, 1, 1}))
	require.NoError(t, err)
	require.NoError(t, m.ScanAll(context.Background()))

	srv := NewServer(DefaultServerConfig(), m, log.Nop())
	s := httptest.NewServer(srv.Handler())
	defer s.Close()

	resp, err := http.Get(s.URL + "/sensors")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var frames []sensor.Frame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&frames))
	require.Len(t, frames, 2)
	require.Equal(t, "front", frames[0].Name)
	require.True(t, frames[0].Result.Hit)
	require.InDelta(t, 4, frames[0].Result.Info.Distance, 1e-9)
	require.Equal(t, sensor.KindLineCast, frames[0].Result.Kind)
	require.Equal(t, sensor.GizmoLine, frames[0].Gizmos[0].Type)
	require.False(t, frames[1].Result.Hit)

	one, err := http.Get(s.URL + "/sensors/rear")
	require.NoError(t, err)
	defer one.Body.Close()
	require.Equal(t, http.StatusOK, one.StatusCode)

	var frame sensor.Frame
	require.NoError(t, json.NewDecoder(one.Body).Decode(&frame))
	require.Equal(t, "rear", frame.Name)

	missing, err := http.Get(s.URL + "/sensors/side")
	require.NoError(t, err)
	defer missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestServer_NonFiniteDistance(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock.NewMockBackend(ctrl)
	backend.EXPECT().BoxCastAll(gomock.Any()).Return([]physics.HitRecord{
		{Point: mgl64.Vec3{0, 0, 1}, Normal: mgl64.Vec3{0, 0, -1}, Distance: 1, Collider: "near"},
		{Distance: math.NaN(), Collider: "degenerate"},
	}).AnyTimes()

	s, err := sensor.New("sweep", sensor.Config{
		Mask:   physics.AllLayers,
		Length: 10,
		Shape:  sensor.FullBoxCast{Section: sensor.Uniform(1)},
	}, physics.NewTransform3D(mgl64.Vec3{}, mgl64.QuatIdent()), backend)
	require.NoError(t, err)

	m := sensor.NewManager()
	require.NoError(t, m.Add(s))
	require.NoError(t, m.ScanAll(context.Background()))

	srv := NewServer(DefaultServerConfig(), m, log.Nop())
	hs := httptest.NewServer(srv.Handler())
	defer hs.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(hs, "/ws"), nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)

	n, err := srv.Broadcast()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	msg := readMessage(t, conn)
	hits := msg.Sensors[0].Result.Hits
	require.Len(t, hits, 2)
	require.Equal(t, 1.0, hits[0].Distance)
	require.Equal(t, "degenerate", hits[1].Collider)
	require.True(t, math.IsNaN(hits[1].Distance))

	resp, err := http.Get(hs.URL + "/sensors")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var frames []sensor.Frame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&frames))
	require.Len(t, frames[0].Result.Hits, 2)
}

func TestServer_Auth(t *testing.T) {
	m, _ := newManager(t)

	cfg := DefaultServerConfig()
	cfg.Token = "supersecrettoken"
	srv := NewServer(cfg, m, log.Nop())
	s := httptest.NewServer(srv.Handler())
	defer s.Close()

	resp, err := http.Get(s.URL + "/sensors")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, s.URL+"/sensors", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer supersecrettoken")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(s, "/ws?token=invalid"), nil)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(s, "/ws?token=supersecrettoken"), nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)

	health, err := http.Get(s.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	require.Equal(t, http.StatusOK, health.StatusCode)
}

func TestServer_Stream(t *testing.T) {
	m, w := newManager(t)
	srv := NewServer(DefaultServerConfig(), m, log.Nop())
	s := httptest.NewServer(srv.Handler())
	defer s.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(s, "/ws"), nil)
	require.NoError(t, err)
	defer conn.Close()

	initial := readMessage(t, conn)
	require.Zero(t, initial.Seq)
	require.Len(t, initial.Sensors, 2)
	require.False(t, initial.Sensors[0].Result.Scanned)
	require.Equal(t, int64(1), srv.GetStats().ClientCount)

	_, err = w.Add(world.NewBox(mgl64.Vec3{0, 0, -3}, mgl64.Vec3{1, 1, 1}))
	require.NoError(t, err)
	require.NoError(t, m.ScanAll(context.Background()))

	n, err := srv.Broadcast()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	msg := readMessage(t, conn)
	require.Equal(t, uint64(1), msg.Seq)
	require.Equal(t, "rear", msg.Sensors[1].Name)
	require.True(t, msg.Sensors[1].Result.Hit)
	require.False(t, msg.Sensors[0].Result.Hit)
	require.Equal(t, sensor.ColorHit, msg.Sensors[1].Gizmos[0].Color)
}

func TestServer_MaxClients(t *testing.T) {
	m, _ := newManager(t)

	cfg := DefaultServerConfig()
	cfg.MaxClients = 1
	srv := NewServer(cfg, m, log.Nop())
	s := httptest.NewServer(srv.Handler())
	defer s.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(s, "/ws"), nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(s, "/ws"), nil)
	require.Error(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_Lifecycle(t *testing.T) {
	m, _ := newManager(t)

	cfg := DefaultServerConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	srv := NewServer(cfg, m, log.Nop())

	require.ErrorIs(t, srv.Stop(context.Background()), ErrServerNotRunning)
	require.NoError(t, srv.Start(context.Background()))
	require.ErrorIs(t, srv.Start(context.Background()), ErrServerAlreadyRunning)
	require.True(t, srv.GetStats().Running)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+srv.Addr()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	require.Zero(t, srv.GetStats().ClientCount)

	require.NoError(t, srv.Close())
	require.ErrorIs(t, srv.Start(context.Background()), ErrServerClosed)
}

func TestServer_AddrDuringStart(t *testing.T) {
	m, _ := newManager(t)

	cfg := DefaultServerConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	srv := NewServer(cfg, m, log.Nop())
	defer srv.Close()

	require.Empty(t, srv.Addr())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = srv.Addr()
		}
	}()
	require.NoError(t, srv.Start(context.Background()))
	wg.Wait()

	require.True(t, strings.HasPrefix(srv.Addr(), "127.0.0.1:"))
}
