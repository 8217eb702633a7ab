package embedded

import (
	"testing"
	"testing/fstest"
)

// resetForTest 恢复未初始化状态，避免测试之间互相影响
func resetForTest(t *testing.T) {
	t.Helper()
	dataFS = nil
	initialized = false
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/camera.yaml": &fstest.MapFile{Data: []byte("lerpSpeed: 0.08\n")},
		"data/system.yaml": &fstest.MapFile{Data: []byte("seed: 0\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetForTest(t)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	resetForTest(t)

	_, err := ReadFile("data/camera.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	resetForTest(t)
	Init(testFS())

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain path", "data/camera.yaml", "lerpSpeed: 0.08\n", false},
		{"dot prefix", "./data/system.yaml", "seed: 0\n", false},
		{"wrong prefix", "assets/camera.yaml", "", true},
		{"missing file", "data/markets.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExists(t *testing.T) {
	resetForTest(t)
	Init(testFS())

	if !Exists("data/camera.yaml") {
		t.Error("data/camera.yaml should exist")
	}
	if Exists("data/missing.yaml") {
		t.Error("data/missing.yaml should not exist")
	}
	if Exists("camera.yaml") {
		t.Error("paths without the data/ prefix are rejected")
	}
}
