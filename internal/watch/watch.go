package watch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"snapvault/internal/logging"
)

// Device describes a newly inserted block partition.
type Device struct {
	Node  string // e.g. /dev/sdb1
	Label string // filesystem label, may be empty
}

// WaitForCard blocks until a block partition is added (a memory card or
// card reader appearing) and returns it. Cancelling the context returns
// ctx.Err().
func WaitForCard(ctx context.Context, logger *slog.Logger) (Device, error) {
	log := logging.NewComponentLogger(logger, "watch")

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return Device{}, fmt.Errorf("connect to netlink socket: %w", err)
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(queue, errs, buildMatcher())
	defer close(quit)

	log.Info("waiting for card insertion")

	for {
		select {
		case <-ctx.Done():
			return Device{}, ctx.Err()
		case uevent := <-queue:
			dev, ok := deviceFromEvent(uevent)
			if !ok {
				log.Debug("ignoring event without device name",
					logging.String("kobj", uevent.KObj))
				continue
			}
			log.Info("card detected",
				logging.String("device", dev.Node),
				logging.String("label", dev.Label))
			return dev, nil
		case err := <-errs:
			log.Warn("netlink monitor error", logging.Error(err))
		}
	}
}

// buildMatcher matches add events for block partitions:
// ACTION=add, SUBSYSTEM=block, DEVTYPE=partition.
func buildMatcher() netlink.Matcher {
	action := "add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "block",
			"DEVTYPE":   "partition",
		},
	})
	return rules
}

// deviceFromEvent extracts the device node and label from a matched uevent.
func deviceFromEvent(uevent netlink.UEvent) (Device, bool) {
	node := uevent.Env["DEVNAME"]
	if node == "" {
		devpath := uevent.Env["DEVPATH"]
		if devpath == "" {
			return Device{}, false
		}
		parts := strings.Split(devpath, "/")
		node = "/dev/" + parts[len(parts)-1]
	}
	return Device{Node: node, Label: uevent.Env["ID_FS_LABEL"]}, true
}
