package e2e

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/battlesnakeio/solo/rules"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
)

func newClient(url string) *client {
	return &client{
		apiURL: url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestMain(m *testing.M) {
	enableE2e := flag.Bool("enable-e2e", false, "enable e2e tests")
	flag.Parse()

	if !*enableE2e {
		os.Exit(0)
		return
	}

	proc := exec.Command("snake", "server", "--prometheus=false")
	proc.Stdout = os.Stdout
	proc.Stderr = os.Stderr

	if err := proc.Start(); err != nil {
		panic(err)
	}

	code := m.Run()

	err := proc.Process.Kill()
	if err != nil {
		fmt.Printf("error while killing process: %v\n", err)
	}
	os.Exit(code)
}

func Test(t *testing.T) {
	const (
		games        = 10
		waitTicks    = 120
		waitInterval = 250 * time.Millisecond
	)

	apiURL := "http://127.0.0.1:3005"
	c := newClient(apiURL)

	for i := 0; i < 10; i++ {
		if _, getErr := http.Get(apiURL + "/games"); getErr == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}

	directions := []string{"up", "down", "left", "right"}
	for i := 0; i < games; i++ {
		t.Run(fmt.Sprintf("Random#%d", i), func(t *testing.T) {
			t.Parallel()
			randGen := rand.New(rand.NewSource(time.Now().UnixNano()))

			id, err := c.beginGame()
			if !assert.Nil(t, err) {
				return
			}
			defer func() { _ = c.endGame(id) }()

			var st *rules.Snapshot
			for i := 0; i < waitTicks; i++ {
				time.Sleep(waitInterval)
				st, err = c.gameStatus(id)
				if !assert.Nil(t, err) {
					return
				}

				if st.Status == rules.GameStatusGameOver {
					t.Logf("game finished id=%s turns=%d score=%d", id, st.Turn, st.Score)
					if assert.NotNil(t, st.Death) && st.Death.Cause != rules.DeathCauseBoardFull {
						assert.Equal(t, st.Turn+1, st.Death.Turn)
					}
					if !assert.True(t, len(st.Snake) >= rules.InitialLength+st.FoodCount) {
						spew.Dump(st)
					}
					assert.True(t, st.Score >= st.FoodCount*rules.FoodScore)
					return
				}

				// Errors here are rate limiting or a race with game over.
				_ = c.turn(id, directions[randGen.Intn(len(directions))])
			}

			spew.Dump(st)
			t.Errorf("test failed after: %v", time.Duration(waitTicks)*waitInterval)
		})
	}
}
