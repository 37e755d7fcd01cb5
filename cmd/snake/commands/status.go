package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/battlesnakeio/snake/api"
	"github.com/davecgh/go-spew/spew"
	pkgerrors "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a game from a running snake server",
	Args: func(c *cobra.Command, args []string) error {
		if len(gameID) == 0 {
			return errors.New("game id is required")
		}
		return nil
	},
	RunE: func(*cobra.Command, []string) error {
		sr, err := getStatus(gameID)
		if err != nil {
			return err
		}
		if dump {
			spew.Dump(sr)
			return nil
		}
		out, err := json.MarshalIndent(sr, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var (
	gameID string
	dump   bool
)

func init() {
	statusCmd.Flags().StringVarP(&gameID, "game-id", "g", "", "the game id of the game to get the status of")
	statusCmd.Flags().BoolVar(&dump, "dump", false, "dump the decoded response instead of printing json")
	statusCmd.Flags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the snake server")
}

func getStatus(id string) (*api.GameResponse, error) {
	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	resp, err := client.Get(fmt.Sprintf("%s/games/%s", apiAddr, id))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "error while getting status")
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "unable to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	sr := &api.GameResponse{}
	err = json.Unmarshal(data, sr)
	if err != nil {
		log.WithFields(log.Fields{
			"resp": string(data),
			"id":   id,
		}).Info("unable to unmarshal status response")
		return nil, pkgerrors.Wrap(err, "unable to unmarshal status response")
	}

	return sr, nil
}
