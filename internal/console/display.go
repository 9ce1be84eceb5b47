// Package console is the operator's local terminal: it renders inbound
// traffic and connection notices, and reads commands from standard input.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"

	"github.com/vthunder/wabot/internal/effectors"
	"github.com/vthunder/wabot/internal/types"
)

const scanPrompt = "📱 Scan QR dari WhatsApp kamu (Linked devices → Link a device)."

var (
	groupStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	senderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	privateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	guideStyle   = lipgloss.NewStyle().Bold(true)
)

// Display writes operator-facing output. Writes are serialized so lines from
// the event goroutine and the console reader never interleave.
type Display struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewDisplay creates a display writing to out
func NewDisplay(out io.Writer) *Display {
	return &Display{out: out, now: time.Now}
}

func (d *Display) println(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.out, s)
}

// Banner prints the quick-command guide
func (d *Display) Banner(guide []string) {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(guideStyle.Render("🧩 Perintah cepat (terminal):"))
	for _, line := range guide {
		sb.WriteString("\n• ")
		sb.WriteString(line)
	}
	sb.WriteString("\n")
	d.println(sb.String())
}

// Inbound shows one received message. Group messages carry the group subject
// when known, falling back to the chat id.
func (d *Display) Inbound(evt types.InboundEvent, text, groupSubject string) {
	ts := evt.Timestamp
	if ts.IsZero() {
		ts = d.now()
	}
	clock := ts.Format("15:04:05")

	if evt.IsGroup() {
		name := groupSubject
		if name == "" {
			name = evt.ChatID
		}
		d.println(groupStyle.Render(fmt.Sprintf("👥 [%s] Grup: %s", clock, name)) + "\n" +
			senderStyle.Render("Dari: "+evt.SenderID) + "\n" +
			bodyStyle.Render("Pesan: "+text) + "\n")
		return
	}

	name := evt.PushName
	if name == "" {
		name = evt.SenderID
	}
	d.println(privateStyle.Render(fmt.Sprintf("💬 [%s] Dari: %s (%s)", clock, name, evt.SenderID)) + "\n" +
		bodyStyle.Render("Pesan: "+text) + "\n")
}

// QR renders a pairing challenge as a terminal QR code
func (d *Display) QR(code string) {
	d.mu.Lock()
	qrterminal.GenerateHalfBlock(code, qrterminal.L, d.out)
	d.mu.Unlock()
	d.println(scanPrompt)
}

// Notice prints a connection or status line
func (d *Display) Notice(text string) {
	d.println(text)
}

// Result prints the outcome of a console command
func (d *Display) Result(res effectors.Result) {
	if res.Message == "" {
		return
	}
	if res.Failed() {
		d.println(warnStyle.Render(res.Message))
		return
	}
	d.println(res.Message)
}
