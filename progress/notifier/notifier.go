// Package notifier provides ready-made consumers for the progress and
// completion callbacks of a reporter.
//
// Every notifier exposes a Notify method that can be passed as a callback:
//
//	ch := notifier.NewChannel(ctx)
//	r, err := progress.NewAggregateReporter(
//	    progress.WithProgressNotification(notifier.Fanout(ch.Notify, notifier.NewLog(log).Notify), time.Second),
//	    ...
//	)
//
//	go func() {
//	    for stats := range ch.Stats() {
//	        fmt.Printf("%.2f%%\n", stats.CurrentPercent)
//	    }
//	}()
package notifier

import "github.com/gcastellov/go-progress/progress"

// Notifier consumes Stats snapshots.
type Notifier interface {
	Notify(stats progress.Stats)
}

// Fanout returns a callback handing every snapshot to each fn in order. Nil
// functions are skipped.
func Fanout(fns ...func(progress.Stats)) func(progress.Stats) {
	targets := make([]func(progress.Stats), 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			targets = append(targets, fn)
		}
	}
	return func(stats progress.Stats) {
		for _, fn := range targets {
			fn(stats)
		}
	}
}
