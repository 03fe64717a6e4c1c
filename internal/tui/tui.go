// Package tui is the interactive three-pane inspector: accessible tree,
// property panel, and event log.
package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/inspect"
)

// Run drives the inspector TUI over the given provider until the user
// quits. The controller owns the provider's lifecycle.
//
// Controller callbacks fire on the controller's internal goroutine. They
// must never wait on the program's message queue directly: the queue is
// drained by the same loop that issues controller calls, and the two
// sides wedge if either blocks on the other. Callbacks enqueue into a
// buffered relay instead, and a forwarder goroutine feeds the program.
func Run(provider bridge.Provider) error {
	relay := make(chan tea.Msg, 64)
	send := func(msg tea.Msg) { relay <- msg }

	c := inspect.New(inspect.Config{
		Provider:      provider,
		OnTreeChanged: func() { send(treeChangedMsg{}) },
		OnSelectionChanged: func(n *inspect.TreeNode, props bridge.PropertyList) {
			send(selectionChangedMsg{node: n, props: props})
		},
		OnStatus:   func(s string) { send(statusMsg(s)) },
		OnNotice:   func(s string) { send(noticeMsg(s)) },
		OnLogEntry: func(e inspect.LogEntry) { send(logEntryMsg(e)) },
	})

	if err := c.Initialize(); err != nil {
		c.Dispose()
		return fmt.Errorf("initializing inspector: %w", err)
	}

	p := tea.NewProgram(newModel(c), tea.WithAltScreen())

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case msg := <-relay:
				p.Send(msg)
			case <-stop:
				return
			}
		}
	}()

	_, err := p.Run()

	// Dispose before stopping the relay: callbacks fired during teardown
	// still drain, and Send on a finished program is a no-op.
	c.Dispose()
	close(stop)
	wg.Wait()
	return err
}
