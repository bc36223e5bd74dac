package redissvc

import "testing"

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		userID   int
		params   map[string]string
		expected string
	}{
		{
			name:     "endpoint only",
			endpoint: "products:list",
			expected: "products:list",
		},
		{
			name:     "with user",
			endpoint: "products:list",
			userID:   7,
			expected: "products:list:user:7",
		},
		{
			name:     "params sorted",
			endpoint: "products:list",
			params:   map[string]string{"skip": "10", "limit": "5"},
			expected: "products:list:limit:5:skip:10",
		},
		{
			name:     "empty params dropped",
			endpoint: "products:list",
			params:   map[string]string{"skip": "0", "category": ""},
			expected: "products:list:skip:0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.endpoint, tt.userID, tt.params); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	params := map[string]string{"a": "1", "b": "2", "c": "3"}
	first := CacheKey("products:list", 1, params)
	for i := 0; i < 10; i++ {
		if got := CacheKey("products:list", 1, params); got != first {
			t.Fatalf("key changed between calls: %q vs %q", first, got)
		}
	}
}
