package trends

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFallbackTopics(t *testing.T) {
	content := `# Custom topics, one per line
best productivity apps

home coffee brewing
# another comment
budget travel europe
`
	path := filepath.Join(t.TempDir(), "topics.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	topics, err := LoadFallbackTopics(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"best productivity apps", "home coffee brewing", "budget travel europe"}
	if len(topics) != len(expected) {
		t.Fatalf("Expected %d topics, got %d", len(expected), len(topics))
	}
	for i, topic := range expected {
		if topics[i] != topic {
			t.Errorf("Expected topic %d to be '%s', got '%s'", i, topic, topics[i])
		}
	}
}

func TestLoadFallbackTopicsMissingFile(t *testing.T) {
	if _, err := LoadFallbackTopics(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Expected error for missing topics file")
	}
}

func TestSampleTopics(t *testing.T) {
	topics := []string{"a", "b", "c", "d", "e"}

	sampled := SampleTopics(topics, 3)
	if len(sampled) != 3 {
		t.Errorf("Expected 3 sampled topics, got %d", len(sampled))
	}

	seen := make(map[string]bool)
	for _, topic := range sampled {
		if seen[topic] {
			t.Errorf("Topic '%s' sampled twice", topic)
		}
		seen[topic] = true
	}
}

func TestSampleTopicsCountExceedsPool(t *testing.T) {
	topics := []string{"a", "b"}

	sampled := SampleTopics(topics, 10)
	if len(sampled) != 2 {
		t.Errorf("Expected all 2 topics, got %d", len(sampled))
	}
}

func TestSampleTopicsDoesNotMutateInput(t *testing.T) {
	topics := []string{"a", "b", "c"}
	original := make([]string, len(topics))
	copy(original, topics)

	SampleTopics(topics, 2)

	for i := range topics {
		if topics[i] != original[i] {
			t.Error("Expected input slice to be left untouched")
			break
		}
	}
}
