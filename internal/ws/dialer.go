package ws

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
)

// readLimit caps inbound frame size. Assistant replies can be long but
// never approach this.
const readLimit = 1 << 20

// WebsocketDialer is the production Dialer backed by coder/websocket.
type WebsocketDialer struct {
	// HTTPClient is used for the handshake. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Dial opens a WebSocket connection to the target URL.
func (d *WebsocketDialer) Dial(ctx context.Context, target string) (Conn, error) {
	c, _, err := websocket.Dial(ctx, target, &websocket.DialOptions{
		HTTPClient: d.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	c.SetReadLimit(readLimit)
	return &websocketConn{c: c}, nil
}

type websocketConn struct {
	c *websocket.Conn
}

func (w *websocketConn) Read(ctx context.Context) ([]byte, error) {
	_, data, err := w.c.Read(ctx)
	return data, err
}

func (w *websocketConn) Write(ctx context.Context, data []byte) error {
	return w.c.Write(ctx, websocket.MessageText, data)
}

func (w *websocketConn) Close() error {
	return w.c.Close(websocket.StatusNormalClosure, "client disconnect")
}
