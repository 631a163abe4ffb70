package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/base/metrics"
	"github.com/x-xyz/goauction/domain/notification"
)

const (
	DefaultStream  = "AUCTION_EVENTS"
	subjectPrefix  = "auction.events"
	publishTimeout = 5 * time.Second
	setupTimeout   = 10 * time.Second
)

// Subject is where events of one auction are archived
func Subject(auctionId string) string {
	return fmt.Sprintf("%s.%s", subjectPrefix, auctionId)
}

type publisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

type Config struct {
	Url    string
	Stream string
	MaxAge time.Duration
}

type impl struct {
	js  publisher
	met metrics.Service
}

// Connect dials nats and makes sure the archive stream exists
func Connect(c ctx.Ctx, cfg Config) (notification.Archive, func(), error) {
	if cfg.Stream == "" {
		cfg.Stream = DefaultStream
	}

	nc, err := nats.Connect(cfg.Url, nats.Name("goauction"), nats.MaxReconnects(-1))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "url": cfg.Url}).Error("nats.Connect failed")
		return nil, nil, xerrors.Errorf("failed to connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		c.WithField("err", err).Error("jetstream.New failed")
		return nil, nil, xerrors.Errorf("failed to create jetstream context: %w", err)
	}

	setupCtx, cancel := context.WithTimeout(c, setupTimeout)
	defer cancel()
	if _, err := js.CreateOrUpdateStream(setupCtx, jetstream.StreamConfig{
		Name:        cfg.Stream,
		Description: "auction notification events",
		Subjects:    []string{subjectPrefix + ".*"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      cfg.MaxAge,
		Duplicates:  2 * time.Minute,
		Replicas:    1,
	}); err != nil {
		nc.Close()
		c.WithFields(log.Fields{"err": err, "stream": cfg.Stream}).Error("CreateOrUpdateStream failed")
		return nil, nil, xerrors.Errorf("failed to create stream %s: %w", cfg.Stream, err)
	}

	c.WithField("stream", cfg.Stream).Info("event archive ready")
	return newArchive(js), nc.Close, nil
}

func newArchive(js publisher) *impl {
	return &impl{js: js, met: metrics.New("eventbus")}
}

// Append waits for the server ack. The event id is the dedup key, so a
// retried append is stored once.
func (im *impl) Append(c ctx.Ctx, evt *notification.Event) error {
	defer im.met.BumpTime("append.time").End()

	data, err := json.Marshal(evt)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}

	pubCtx, cancel := context.WithTimeout(c, publishTimeout)
	defer cancel()

	subject := Subject(evt.AuctionId)
	ack, err := im.js.Publish(pubCtx, subject, data, jetstream.WithMsgID(evt.Id))
	if err != nil {
		im.met.BumpSum("append.err", 1, "kind", string(evt.Kind))
		c.WithFields(log.Fields{"err": err, "subject": subject}).Error("jetstream publish failed")
		return xerrors.Errorf("failed to archive event %s: %w", evt.Id, err)
	}

	c.WithFields(log.Fields{"subject": subject, "seq": ack.Sequence, "duplicate": ack.Duplicate}).Debug("event archived")
	return nil
}
