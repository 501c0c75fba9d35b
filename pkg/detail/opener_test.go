package detail

import (
	"context"
	"testing"

	"github.com/matzehuels/libpanel/pkg/errors"
)

func TestBrowserOpenerRejectsEmptyURL(t *testing.T) {
	o := NewBrowserOpener(nil, nil)
	err := o.Open(context.Background(), Action{Application: DefaultApplication})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestOpenerFunc(t *testing.T) {
	var got Action
	var o Opener = OpenerFunc(func(_ context.Context, a Action) error {
		got = a
		return nil
	})
	md := Build(fullLibrary(), "", Options{Now: testNow})
	target := md.Targets()[0]
	if err := o.Open(context.Background(), target.Action); err != nil {
		t.Fatal(err)
	}
	if got.URL != "https://docs.swmansion.com/react-native-reanimated/" {
		t.Errorf("opened %q, want the website link first", got.URL)
	}
}
