package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/battlesnakeio/solo/api"
	"github.com/battlesnakeio/solo/rules"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
}

func init() {
	for _, c := range []*cobra.Command{statusCmd, startCmd, pauseCmd, turnCmd, endCmd, watchCmd} {
		c.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game")
	}
}

func requireGameID(c *cobra.Command, args []string) error {
	if len(gameID) == 0 {
		return errors.New("game id is required")
	}
	return nil
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "creates a new game on the snake server",
	Run: func(*cobra.Command, []string) {
		id, err := createGame()
		if err != nil {
			fmt.Println("unable to create game:", err)
			return
		}
		fmt.Printf(`{"ID": "%s"}`+"\n", id)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a game from the snake server",
	Args:  requireGameID,
	Run: func(*cobra.Command, []string) {
		snap, err := getStatus(gameID)
		if err != nil {
			fmt.Println("unable to get status:", err)
			return
		}
		spew.Dump(snap)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "starts or restarts a game",
	Args:  requireGameID,
	Run: func(*cobra.Command, []string) {
		printSnapshot(startGame(gameID))
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "pauses or resumes a game",
	Args:  requireGameID,
	Run: func(*cobra.Command, []string) {
		printSnapshot(pauseGame(gameID))
	},
}

var turnCmd = &cobra.Command{
	Use:   "turn <up|down|left|right>",
	Short: "requests a new direction for the snake",
	Args: func(c *cobra.Command, args []string) error {
		if err := requireGameID(c, args); err != nil {
			return err
		}
		if len(args) != 1 {
			return errors.New("exactly one direction is required")
		}
		_, err := rules.ParseDirection(args[0])
		return err
	},
	Run: func(_ *cobra.Command, args []string) {
		printSnapshot(turn(gameID, args[0]))
	},
}

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "ends a game and removes it from the server",
	Args:  requireGameID,
	Run: func(*cobra.Command, []string) {
		if err := endGame(gameID); err != nil {
			fmt.Println("unable to end game:", err)
		}
	},
}

func printSnapshot(snap *rules.Snapshot, err error) {
	if err != nil {
		fmt.Println("request failed:", err)
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		fmt.Println("unable to marshal snapshot", err)
		return
	}
	fmt.Println(string(data))
}

func createGame() (string, error) {
	cr := &api.CreateResponse{}
	if err := apiRequest("POST", "/games", nil, cr); err != nil {
		return "", err
	}
	return cr.ID, nil
}

func getStatus(id string) (*rules.Snapshot, error) {
	snap := &rules.Snapshot{}
	return snap, apiRequest("GET", "/games/"+id, nil, snap)
}

func startGame(id string) (*rules.Snapshot, error) {
	snap := &rules.Snapshot{}
	return snap, apiRequest("POST", "/games/"+id+"/start", nil, snap)
}

func pauseGame(id string) (*rules.Snapshot, error) {
	snap := &rules.Snapshot{}
	return snap, apiRequest("POST", "/games/"+id+"/pause", nil, snap)
}

func turn(id, direction string) (*rules.Snapshot, error) {
	snap := &rules.Snapshot{}
	req := api.DirectionRequest{Direction: direction}
	return snap, apiRequest("POST", "/games/"+id+"/direction", req, snap)
}

func endGame(id string) error {
	return apiRequest("DELETE", "/games/"+id, nil, nil)
}

// apiRequest calls the api at apiAddr, decoding a successful response into
// out when it is not nil.
func apiRequest(method, path string, body, out interface{}) error {
	buf := &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return errors.Wrap(err, "unable to marshal request")
		}
	}

	req, err := http.NewRequest(method, apiAddr+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "error while calling %s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "unable to read response body")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return errors.Errorf("%s (status %d)", e.Error, resp.StatusCode)
		}
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(data, out), "unable to unmarshal response")
}
