package luxws

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// The controller speaks a line-oriented command protocol over a websocket on
// port 8214: LOGIN;<pin> answers with the Navigation tree, GET;<id> with the
// Content of that page, SET;<id>;<value> stages a settings change which SAVE;1
// commits.
const (
	defaultPort      = "8214"
	subprotocol      = "Lux_WS"
	handshakeTimeout = 5 * time.Second
	requestTimeout   = 10 * time.Second
)

const (
	informationPage = "Informationen"
	settingsPage    = "Einstellungen"
)

var ErrLoginRejected = errors.New("login rejected by controller")
var ErrPageNotFound = errors.New("page not present in navigation")

type Client struct {
	url   string
	pin   string
	mutex sync.Mutex
}

func NewClient(host string, pin string) *Client {
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, defaultPort)
	}

	return &Client{
		url: fmt.Sprintf("ws://%v/", host),
		pin: pin,
	}
}

// NavigationTree logs in and returns the page tree. Used as a connectivity
// check on startup.
func (c *Client) NavigationTree() (*Navigation, error) {
	var navigation *Navigation

	err := c.session(func(conn *websocket.Conn, nav *Navigation) error {
		navigation = nav
		return nil
	})

	return navigation, err
}

// Information fetches the raw Informationen page payload. Decoding and
// classification is up to the caller.
func (c *Client) Information() ([]byte, error) {
	var payload []byte

	err := c.session(func(conn *websocket.Conn, nav *Navigation) error {
		page := nav.find(informationPage)
		if page == nil {
			return fmt.Errorf("%w: %v", ErrPageNotFound, informationPage)
		}

		response, err := c.request(conn, "GET;"+page.ID)
		if err != nil {
			return err
		}

		payload = response
		return nil
	})

	return payload, err
}

// Controls walks the settings pages and collects every option-bearing entry.
func (c *Client) Controls() ([]Control, error) {
	var controls []Control

	err := c.session(func(conn *websocket.Conn, nav *Navigation) error {
		settings := nav.find(settingsPage)
		if settings == nil {
			return fmt.Errorf("%w: %v", ErrPageNotFound, settingsPage)
		}

		pages := []NavigationItem{*settings}
		pages = append(pages, settings.Items...)

		for _, page := range pages {
			payload, err := c.request(conn, "GET;"+page.ID)
			if err != nil {
				return err
			}

			content, err := DecodeContent(payload)
			if err != nil {
				return fmt.Errorf("decoding settings page %v: %w", page.ID, err)
			}

			controls = append(controls, collectControls(content.Items, page.ID)...)
		}

		return nil
	})

	return controls, err
}

// Set writes a control value and commits it. The page the control lives on is
// fetched first, the controller rejects SET for controls it did not just serve.
func (c *Client) Set(pageID string, controlID string, value string) error {
	return c.session(func(conn *websocket.Conn, nav *Navigation) error {
		if pageID != "" {
			if _, err := c.request(conn, "GET;"+pageID); err != nil {
				return err
			}
		}

		if _, err := c.request(conn, fmt.Sprintf("SET;%v;%v", controlID, value)); err != nil {
			return err
		}

		if _, err := c.request(conn, "SAVE;1"); err != nil {
			return err
		}

		return nil
	})
}

// session dials the controller, performs the LOGIN handshake and hands the
// authenticated connection to fn. One session at a time, the controller
// serializes all exchanges anyway.
func (c *Client) session(fn func(conn *websocket.Conn, nav *Navigation) error) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		Subprotocols:     []string{subprotocol},
	}

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("connecting to %v: %w", c.url, err)
	}
	defer conn.Close()

	greeting, err := c.request(conn, "LOGIN;"+c.pin)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	nav, err := decodeNavigation(greeting)
	if err != nil || len(nav.Items) == 0 {
		return ErrLoginRejected
	}

	return fn(conn, nav)
}

func (c *Client) request(conn *websocket.Conn, command string) ([]byte, error) {
	conn.SetWriteDeadline(time.Now().Add(requestTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(command)); err != nil {
		return nil, fmt.Errorf("sending %v: %w", commandVerb(command), err)
	}

	conn.SetReadDeadline(time.Now().Add(requestTimeout))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("reading %v response: %w", commandVerb(command), err)
	}

	return payload, nil
}

// commandVerb trims command arguments for error messages so the PIN never ends
// up in a log line.
func commandVerb(command string) string {
	if i := strings.IndexByte(command, ';'); i >= 0 {
		return command[:i]
	}

	return command
}

func collectControls(items []ContentItem, pageID string) []Control {
	var controls []Control

	for _, item := range items {
		if len(item.Options) > 0 && item.Name != "" {
			controls = append(controls, Control{
				ID:      item.ID,
				Name:    item.Name,
				Value:   item.Value,
				Raw:     item.Raw,
				Options: item.Options,
				PageID:  pageID,
			})
		}

		controls = append(controls, collectControls(item.Items, pageID)...)
	}

	return controls
}
