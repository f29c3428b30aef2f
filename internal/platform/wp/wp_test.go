package wp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"luna2d-deploy/internal/config"
	"luna2d-deploy/internal/platform"
)

const sampleManifest = `<?xml version="1.0" encoding="utf-8"?>
<Package xmlns="http://schemas.microsoft.com/appx/2010/manifest" xmlns:m2="http://schemas.microsoft.com/appx/2013/manifest">
  <Identity Name="a1b2c3" Publisher="CN=luna2d" Version="1.0.0.0" />
  <Properties>
    <DisplayName>OldName</DisplayName>
    <PublisherDisplayName>luna2d</PublisherDisplayName>
    <Logo>Assets\StoreLogo.png</Logo>
  </Properties>
  <Applications>
    <Application Id="App" Executable="$targetnametoken$.exe" EntryPoint="Game.App">
      <m2:VisualElements DisplayName="OldName" Square150x150Logo="Assets\Logo.png" Description="Game" ForegroundText="light" BackgroundColor="#000000">
      </m2:VisualElements>
    </Application>
  </Applications>
</Package>
`

func writeManifest(t *testing.T, projectPath, projectName, suffix, content string) string {
	t.Helper()
	path := filepath.Join(projectPath, projectName, projectName+suffix, ManifestFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestManifestPaths(t *testing.T) {
	got := ManifestPaths("p", "Demo")
	want := []string{
		filepath.Join("p", "Demo", "Demo.Windows", "Package.appxmanifest"),
		filepath.Join("p", "Demo", "Demo.WindowsPhone", "Package.appxmanifest"),
	}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ManifestPaths() = %v, want %v", got, want)
	}
}

func TestUpdate_RewritesBothHeads(t *testing.T) {
	proj := t.TempDir()
	win := writeManifest(t, proj, "Demo", ".Windows", sampleManifest)
	phone := writeManifest(t, proj, "Demo", ".WindowsPhone", sampleManifest)

	res, err := New().Update(context.Background(), platform.Request{
		ProjectPath: proj,
		ProjectName: "Demo",
		GameConfig:  config.GameConfig{"name": "Space Race", "version": "2.1"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res.Platform != Name {
		t.Errorf("Platform = %q", res.Platform)
	}
	if len(res.Changed) != 2 {
		t.Fatalf("Changed = %d files, want 2", len(res.Changed))
	}

	for _, path := range []string{win, phone} {
		got := readFile(t, path)
		if !strings.Contains(got, "<DisplayName>Space Race</DisplayName>") {
			t.Errorf("%s: DisplayName element not updated", path)
		}
		if !strings.Contains(got, `<m2:VisualElements DisplayName="Space Race"`) {
			t.Errorf("%s: VisualElements DisplayName not updated", path)
		}
		if !strings.Contains(got, `Version="2.1.0.0"`) {
			t.Errorf("%s: Identity version not updated", path)
		}
		if !strings.Contains(got, "<PublisherDisplayName>luna2d</PublisherDisplayName>") {
			t.Errorf("%s: PublisherDisplayName must be left alone", path)
		}
	}

	diff := res.Changed[0].Diff
	if !strings.Contains(diff, "- ") || !strings.Contains(diff, "+ ") {
		t.Errorf("diff missing changes:\n%s", diff)
	}
	if strings.Contains(diff, "PublisherDisplayName") {
		t.Errorf("diff includes unchanged lines:\n%s", diff)
	}
}

func TestUpdate_SingleHead(t *testing.T) {
	proj := t.TempDir()
	phone := writeManifest(t, proj, "Demo", ".WindowsPhone", sampleManifest)

	res, err := New().Update(context.Background(), platform.Request{
		ProjectPath: proj,
		ProjectName: "Demo",
		GameConfig:  config.GameConfig{},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(res.Changed) != 1 || res.Changed[0].Path != phone {
		t.Errorf("Changed = %+v", res.Changed)
	}
	got := readFile(t, phone)
	if !strings.Contains(got, "<DisplayName>Demo</DisplayName>") {
		t.Error("display name should fall back to the project name")
	}
	if !strings.Contains(got, `Version="1.0.0.0"`) {
		t.Error("version must stay when the game config has none")
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	proj := t.TempDir()
	path := writeManifest(t, proj, "Demo", ".Windows", sampleManifest)
	req := platform.Request{
		ProjectPath: proj,
		ProjectName: "Demo",
		GameConfig:  config.GameConfig{"name": "Space Race"},
	}

	if _, err := New().Update(context.Background(), req); err != nil {
		t.Fatalf("first Update: %v", err)
	}
	first := readFile(t, path)

	res, err := New().Update(context.Background(), req)
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if len(res.Changed) != 0 || len(res.Skipped) != 1 {
		t.Errorf("second run: Changed=%d Skipped=%d, want 0/1", len(res.Changed), len(res.Skipped))
	}
	if readFile(t, path) != first {
		t.Error("manifest changed on the second run")
	}
}

func TestUpdate_NoManifest(t *testing.T) {
	_, err := New().Update(context.Background(), platform.Request{
		ProjectPath: t.TempDir(),
		ProjectName: "Demo",
		GameConfig:  config.GameConfig{},
	})
	if err == nil || !strings.Contains(err.Error(), "Demo.WindowsPhone") {
		t.Errorf("expected error naming both manifests, got %v", err)
	}
}

func TestUpdate_InvalidVersion(t *testing.T) {
	proj := t.TempDir()
	path := writeManifest(t, proj, "Demo", ".Windows", sampleManifest)

	_, err := New().Update(context.Background(), platform.Request{
		ProjectPath: proj,
		ProjectName: "Demo",
		GameConfig:  config.GameConfig{"version": "one.two"},
	})
	if err == nil {
		t.Fatal("expected error for invalid version")
	}
	if readFile(t, path) != sampleManifest {
		t.Error("manifest written despite invalid version")
	}
}

func TestUpdate_EscapesDisplayName(t *testing.T) {
	proj := t.TempDir()
	path := writeManifest(t, proj, "Demo", ".Windows", sampleManifest)

	if _, err := New().Update(context.Background(), platform.Request{
		ProjectPath: proj,
		ProjectName: "Demo",
		GameConfig:  config.GameConfig{"name": `Cats & "Dogs"`},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := readFile(t, path)
	if !strings.Contains(got, "<DisplayName>Cats &amp; &#34;Dogs&#34;</DisplayName>") {
		t.Errorf("display name not escaped:\n%s", got)
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		in      any
		want    string
		wantErr bool
	}{
		{"1", "1.0.0.0", false},
		{"1.2", "1.2.0.0", false},
		{" 1.2.3.4 ", "1.2.3.4", false},
		{"01.2", "1.2.0.0", false},
		{1.5, "1.5.0.0", false},
		{float64(3), "3.0.0.0", false},
		{"", "", true},
		{"1.2.3.4.5", "", true},
		{"1.x", "", true},
		{"70000", "", true},
		{true, "", true},
	}
	for _, tt := range tests {
		got, err := normalizeVersion(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("normalizeVersion(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeVersion(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLineDiff(t *testing.T) {
	old := "a\nb\nc\n"
	updated := "a\nB\nc\n"

	got := lineDiff(old, updated)
	if got != "- b\n+ B\n" {
		t.Errorf("lineDiff() = %q", got)
	}
	if lineDiff(old, old) != "" {
		t.Error("identical input should produce an empty diff")
	}
}
