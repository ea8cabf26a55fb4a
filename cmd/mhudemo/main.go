// The mhudemo command runs the mailbox driver against the simulated MHU
// block, with a peer model that echoes every message back. It demonstrates
// the full transfer path: send, peer acknowledge, receive interrupt,
// completion.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/mhu/datarecording"
	"github.com/sarchlab/mhu/mhu"
	"github.com/sarchlab/mhu/mhusim"
	"github.com/sarchlab/mhu/monitoring"
)

var (
	numMessages int
	monitorPort int
	tracePath   string
	strictSend  bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "mhudemo",
	Short: "Run the MHU mailbox driver against a simulated block",
	Long: `mhudemo builds a simulated MHU hardware block, binds the driver to ` +
		`its register and payload windows, and exchanges messages with a ` +
		`peer model that echoes every payload back.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runDemo()
	},
}

func init() {
	// A .env file can pre-set the defaults below.
	_ = godotenv.Load()

	rootCmd.Flags().IntVarP(&numMessages, "messages", "n",
		envInt("MHUDEMO_MESSAGES", 8), "number of messages to exchange")
	rootCmd.Flags().IntVar(&monitorPort, "monitor-port",
		envInt("MHUDEMO_MONITOR_PORT", 0),
		"serve the monitoring API on this port (0 disables)")
	rootCmd.Flags().StringVar(&tracePath, "trace",
		os.Getenv("MHUDEMO_TRACE"),
		"record transfers into this SQLite database")
	rootCmd.Flags().BoolVar(&strictSend, "strict", false,
		"reject sends while a transfer is outstanding")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"log every protocol event")
}

func envInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ignoring %s=%q: %s\n", key, s, err)
		return fallback
	}

	return v
}

func runDemo() error {
	block := buildEchoBlock()

	builder := mhu.MakeBuilder().
		WithRegisterWindow(block.RegisterWindow()).
		WithPayloadWindow(block.PayloadWindow()).
		WithLines(block.Lines()...)
	if strictSend {
		builder = builder.WithStrictSend()
	}

	ctlr, err := builder.Build("MHU")
	if err != nil {
		return err
	}
	defer ctlr.Close()

	attachHooks(ctlr)

	if monitorPort != 0 {
		monitor := monitoring.NewMonitor().WithPortNumber(monitorPort)
		monitor.RegisterController(ctlr)
		monitor.StartServer()
	}

	var wg sync.WaitGroup
	queue := mhu.NewCompletionQueue(16, func(m *mhu.Message) {
		fmt.Printf("completed %s: % x\n", m.ID, m.RxBuf[:m.RxLen])
		wg.Done()
	})

	for _, channel := range ctlr.Channels() {
		channel.RegisterCompletion(queue.Notify)
		if err := channel.Start(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i := 0; i < numMessages; i++ {
		channel := ctlr.Channel(i % ctlr.NumChannels())
		if err := channel.WaitTransmitIdle(ctx); err != nil {
			return err
		}

		payload := []byte(fmt.Sprintf("msg-%03d", i))
		msg := mhu.MessageBuilder{}.
			WithCmd(uint32(i + 1)).
			WithTxData(payload).
			WithRxBuf(make([]byte, len(payload))).
			Build()

		wg.Add(1)
		if err := channel.Send(msg); err != nil {
			return err
		}
	}

	wg.Wait()
	queue.Close()

	for _, channel := range ctlr.Channels() {
		fmt.Printf("%s: sends=%d completions=%d spurious=%d\n",
			channel.Name(), channel.Sends(),
			channel.Completions(), channel.Spurious())
	}

	return nil
}

// buildEchoBlock creates a block whose peer echoes every transmit back on
// the same channel.
func buildEchoBlock() *mhusim.Block {
	var block *mhusim.Block

	block = mhusim.MakeBuilder().
		WithPeerHandler(func(channel int, cmd uint32, data []byte) {
			// The peer runs on its own goroutine, like a real remote
			// processor.
			go func() {
				echo := make([]byte, len(data))
				copy(echo, data)

				if err := block.InjectRx(channel, cmd, echo); err != nil {
					log.Panic(err)
				}

				block.CompleteTx(channel)
			}()
		}).
		Build("MHU")

	return block
}

func attachHooks(ctlr *mhu.Controller) {
	var tracer *datarecording.TransferRecorder
	if tracePath != "" {
		tracer = datarecording.NewTransferRecorder(datarecording.New(tracePath))
	}

	for _, channel := range ctlr.Channels() {
		if verbose {
			channel.AcceptHook(mhu.NewTransferLogger(
				log.New(os.Stderr, "", log.Lmicroseconds)))
		}

		if tracer != nil {
			channel.AcceptHook(tracer)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
