package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Events Module Suite")
}

var _ = ginkgo.Describe("EventBus", func() {
	var bus *EventBus

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(eventType string) Event {
		return BaseEvent{ID: "evt-1", Type: eventType, Timestamp: time.Now()}
	}

	ginkgo.BeforeEach(func() {
		bus = NewEventBus(testLogger)
	})

	ginkgo.Describe("PublishSync", func() {
		ginkgo.It("runs handlers in subscription order before returning", func() {
			var order []string
			bus.Subscribe(EventTypeAllocationCreated, func(_ context.Context, _ Event) error {
				order = append(order, "audit")
				return nil
			})
			bus.Subscribe(EventTypeAllocationCreated, func(_ context.Context, _ Event) error {
				order = append(order, "notify")
				return nil
			})

			err := bus.PublishSync(context.Background(), newEvent(EventTypeAllocationCreated))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(order).To(gomega.Equal([]string{"audit", "notify"}))
		})

		ginkgo.It("stops at the first handler failure", func() {
			calls := 0
			bus.Subscribe(EventTypeAllocationCreated, func(_ context.Context, _ Event) error {
				calls++
				return errors.New("sink unavailable")
			})
			bus.Subscribe(EventTypeAllocationCreated, func(_ context.Context, _ Event) error {
				calls++
				return nil
			})

			err := bus.PublishSync(context.Background(), newEvent(EventTypeAllocationCreated))
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(calls).To(gomega.Equal(1))
		})

		ginkgo.It("is a no-op without subscribers", func() {
			err := bus.PublishSync(context.Background(), newEvent(EventTypeStatusRecomputed))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Publish", func() {
		ginkgo.It("dispatches asynchronously and swallows handler failures", func() {
			done := make(chan struct{})
			bus.Subscribe(EventTypeAllocationDeleted, func(_ context.Context, _ Event) error {
				close(done)
				return errors.New("sink unavailable")
			})

			err := bus.Publish(context.Background(), newEvent(EventTypeAllocationDeleted))
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Eventually(done).Should(gomega.BeClosed())
		})
	})
})
