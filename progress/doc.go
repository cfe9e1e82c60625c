// Package progress reports the progress of long-running work on a console.
//
// A reporter owns one or more workloads. Each workload has an expected item
// count, success and failure counters that producers increment from any
// goroutine, and a component (bar, spinner, pulse or heartbeat) that draws it.
//
// Reporters run two loops while started:
//
//   - the render loop advances every component, prints a frame and writes it
//     to the sink every report interval, always finishing with a final frame
//   - the stats loop hands a Stats snapshot to the progress callback at most
//     once every stats interval
//
// When every workload is finished the completion callback and the exporter
// are invoked once with the final Stats.
//
// # Basic Usage
//
//	r, err := progress.NewConsoleReporter(100,
//	    progress.WithComponent(component.DefaultBar()),
//	    progress.WithElapsedTime(),
//	    progress.WithRemainingTime(),
//	    progress.WithCompletionNotification(func(s progress.Stats) {
//	        fmt.Println("done in", s.ElapsedTime)
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	defer r.Dispose()
//
//	if err := r.Start(); err != nil {
//	    return err
//	}
//	for _, item := range items {
//	    if process(item) == nil {
//	        r.ReportSuccess()
//	    } else {
//	        r.ReportFailure()
//	    }
//	}
//	return r.Wait()
//
// # Many Workloads
//
// AggregateReporter tracks several named workloads and routes reports by id.
// Its percent is the average of the workload percents, so a small workload
// weighs as much as a large one:
//
//	r, err := progress.NewAggregateReporter(
//	    progress.WithWorkload("download", "Downloading", 15, component.DefaultBar()),
//	    progress.WithWorkload("install", "Installing", 15000, component.DefaultPulse()),
//	)
//	...
//	r.ReportSuccess("download")
//
// # Thread Safety
//
// Report methods are safe for concurrent use and never block. Lifecycle
// methods (Start, Stop, Resume, Wait, Reconfigure, Dispose) are serialized.
package progress
