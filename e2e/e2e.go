package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/battlesnakeio/solo/api"
	"github.com/battlesnakeio/solo/rules"
	"github.com/pkg/errors"
)

type client struct {
	apiURL string
	client *http.Client
}

func (c *client) post(path string, body interface{}, out interface{}) error {
	buf := &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return err
		}
	}
	resp, err := c.client.Post(fmt.Sprintf("%s%s", c.apiURL, path), "application/json", buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("POST %s: status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) beginGame() (string, error) {
	res := &api.CreateResponse{}
	if err := c.post("/games", nil, res); err != nil {
		return "", err
	}
	if err := c.post(fmt.Sprintf("/games/%s/start", res.ID), nil, nil); err != nil {
		return "", err
	}
	return res.ID, nil
}

func (c *client) turn(gameID, direction string) error {
	return c.post(fmt.Sprintf("/games/%s/direction", gameID), api.DirectionRequest{Direction: direction}, nil)
}

func (c *client) gameStatus(gameID string) (*rules.Snapshot, error) {
	resp, err := c.client.Get(fmt.Sprintf("%s/games/%s", c.apiURL, gameID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("GET game: status %d", resp.StatusCode)
	}
	st := &rules.Snapshot{}
	return st, json.NewDecoder(resp.Body).Decode(st)
}

func (c *client) endGame(gameID string) error {
	req, err := http.NewRequest("DELETE", fmt.Sprintf("%s/games/%s", c.apiURL, gameID), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
