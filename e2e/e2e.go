// Package e2e drives a snake server over http the way a remote spectator or
// controller would.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/battlesnakeio/snake/api"
	"github.com/battlesnakeio/snake/game"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const pageSize = 1000

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) getJSON(path string, v interface{}) error {
	resp, err := c.client.Get(c.apiURL + path)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("GET %s: status %d", path, resp.StatusCode)
	} else {
		err = json.NewDecoder(resp.Body).Decode(v)
	}
	if cErr := resp.Body.Close(); err == nil {
		err = cErr
	}
	return err
}

func (c *client) gameStatus(gameID string) (*api.GameResponse, []*game.GameFrame, error) {
	st := &api.GameResponse{}
	if err := c.getJSON(fmt.Sprintf("/games/%s", gameID), st); err != nil {
		return nil, nil, err
	}

	var frames []*game.GameFrame
	for {
		page := &api.FramesResponse{}
		path := fmt.Sprintf("/games/%s/frames?offset=%d&limit=%d", gameID, len(frames), pageSize)
		if err := c.getJSON(path, page); err != nil {
			return nil, nil, err
		}
		frames = append(frames, page.Frames...)
		if page.Count < pageSize {
			break
		}
	}
	return st, frames, nil
}

func (c *client) move(gameID string, d game.Direction) error {
	data, err := json.Marshal(&api.MoveRequest{Move: string(d)})
	if err != nil {
		return err
	}
	resp, err := c.client.Post(fmt.Sprintf("%s/games/%s/move", c.apiURL, gameID), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	if err := resp.Body.Close(); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusAccepted {
		return errors.Errorf("move: status %d", resp.StatusCode)
	}
	return nil
}

// follow reads the frame socket of a game until the server closes it.
func (c *client) follow(gameID string) ([]*game.GameFrame, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, err
	}
	u.Scheme = "ws"
	u.Path = fmt.Sprintf("/socket/%s", gameID)

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}
	defer conn.Close()

	var frames []*game.GameFrame
	for {
		f := &game.GameFrame{}
		if err := conn.ReadJSON(f); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return frames, nil
			}
			return frames, err
		}
		frames = append(frames, f)
	}
}
