package flags

import (
	"testing"

	"github.com/urfave/cli/v2"
)

func TestMerge(t *testing.T) {
	a := &cli.StringFlag{Name: "a"}
	b := &cli.BoolFlag{Name: "b"}
	c := &cli.Uint64Flag{Name: "c"}

	merged := Merge([]cli.Flag{a}, nil, []cli.Flag{b, c})
	if len(merged) != 3 || merged[0] != a || merged[1] != b || merged[2] != c {
		t.Fatalf("unexpected merge result: %v", merged)
	}
}

func TestNewAppVersion(t *testing.T) {
	app := NewApp("0123456789abcdef", "20240101", "test usage")
	if app.Version == "" || app.Usage != "test usage" {
		t.Fatalf("bad app: version %q usage %q", app.Version, app.Usage)
	}
	if want := "-01234567-20240101"; app.Version[len(app.Version)-len(want):] != want {
		t.Fatalf("version %q does not carry commit and date", app.Version)
	}
}
