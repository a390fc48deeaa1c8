package trends

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// LoadFallbackTopics reads the local topics file used when the trend feed
// returns nothing. Blank lines and #-comments are ignored.
func LoadFallbackTopics(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topics file: %w", err)
	}
	defer file.Close()

	var topics []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		topics = append(topics, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read topics file: %w", err)
	}

	return topics, nil
}

// SampleTopics returns up to count randomly chosen topics.
func SampleTopics(topics []string, count int) []string {
	if count >= len(topics) {
		count = len(topics)
	}

	shuffled := make([]string, len(topics))
	copy(shuffled, topics)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled[:count]
}
