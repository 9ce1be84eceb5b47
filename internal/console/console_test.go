package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vthunder/wabot/internal/command"
	"github.com/vthunder/wabot/internal/effectors"
	"github.com/vthunder/wabot/internal/types"
)

type recorder struct {
	mu    sync.Mutex
	names []string
	args  [][]string
}

func (r *recorder) exec(_ context.Context, cmd command.Command) effectors.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, cmd.Name)
	r.args = append(r.args, cmd.Args)
	switch cmd.Name {
	case "boom":
		panic("boom")
	case "bad":
		return effectors.Fail(errors.New("bad"), "⚠️  Format salah. Lihat panduan perintah.")
	}
	return effectors.OK("ok %s", cmd.Name)
}

func (r *recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func TestReader_HandlesLinesInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	var out bytes.Buffer
	rec := &recorder{}
	in := strings.NewReader("groups\n\n   \ntagall|g1@g.us|Halo semua\nboom\nbad\nEXIT\n")
	r := NewReader(in, NewDisplay(&out), rec.exec)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{"groups", "tagall", "boom", "bad", "exit"}, rec.Names())
	assert.Equal(t, []string{"g1@g.us", "Halo semua"}, rec.args[1])
	assert.Contains(t, out.String(), "ok groups")
	assert.Contains(t, out.String(), "Format salah")
	assert.Contains(t, out.String(), "ok exit")
}

func TestReader_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	pr, pw := io.Pipe()
	rec := &recorder{}
	r := NewReader(pr, NewDisplay(io.Discard), rec.exec)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()

	_, err := pw.Write([]byte("groups\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(rec.Names()) == 1 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reader did not stop")
	}
	// release the blocked scanner goroutine
	require.NoError(t, pw.Close())
}

func TestDisplay_Inbound(t *testing.T) {
	var out bytes.Buffer
	d := NewDisplay(&out)
	d.now = func() time.Time { return time.Date(2025, 1, 2, 9, 5, 7, 0, time.UTC) }

	d.Inbound(types.InboundEvent{ChatID: "g1@g.us", SenderID: "62811@s.whatsapp.net"}, "halo", "Arisan")
	d.Inbound(types.InboundEvent{ChatID: "g2@g.us", SenderID: "62811@s.whatsapp.net"}, "hai", "")
	d.Inbound(types.InboundEvent{ChatID: "62812@s.whatsapp.net", SenderID: "62812@s.whatsapp.net", PushName: "Budi"}, "pagi", "")

	s := out.String()
	assert.Contains(t, s, "👥 [09:05:07] Grup: Arisan")
	assert.Contains(t, s, "Dari: 62811@s.whatsapp.net")
	assert.Contains(t, s, "Pesan: halo")
	assert.Contains(t, s, "Grup: g2@g.us")
	assert.Contains(t, s, "💬 [09:05:07] Dari: Budi (62812@s.whatsapp.net)")
}

func TestDisplay_BannerAndQR(t *testing.T) {
	var out bytes.Buffer
	d := NewDisplay(&out)

	d.Banner([]string{"Keluar: exit"})
	d.QR("2@pairing-code")
	d.Result(effectors.Result{})

	s := out.String()
	assert.Contains(t, s, "Perintah cepat")
	assert.Contains(t, s, "• Keluar: exit")
	assert.Contains(t, s, scanPrompt)
}
