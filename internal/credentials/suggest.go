// Package credentials generates kid-friendly username suggestions,
// offered when a requested username is already taken.
package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var adjectives = []string{
	"happy", "sunny", "brave", "bright", "cool", "swift", "clever", "jolly",
	"mighty", "super", "star", "wild", "funny", "lucky", "magic", "bouncy",
	"cheerful", "daring", "eager", "gentle", "kindly", "lively", "merry",
	"noble", "quick", "snappy", "turbo", "zippy", "bold", "cosmic", "epic",
}

var nouns = []string{
	"dragon", "tiger", "eagle", "dolphin", "panda", "lion", "wolf", "bear",
	"fox", "hawk", "phoenix", "unicorn", "rocket", "wizard", "knight",
	"robot", "astronaut", "hero", "champion", "explorer", "ranger",
	"captain", "comet", "thunder", "lightning", "flame", "storm", "racer",
}

// SuggestUsername generates a random "adjective_noun_NN" username. The
// underscore separator keeps suggestions inside the allowed username
// character set.
func SuggestUsername() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}
	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s_%02d", adjective, noun, n.Int64()), nil
}

func randomElement(slice []string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}
	return slice[n.Int64()], nil
}
