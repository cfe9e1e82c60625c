package progress

import (
	"errors"
	"fmt"

	"github.com/gcastellov/go-progress/progress/component"
)

// ConsoleReporter displays the progress of a single workload.
type ConsoleReporter struct {
	*reporter
	workload *Workload
}

// NewConsoleReporter returns a reporter for expectedItems items rendered with
// the component set by WithComponent.
func NewConsoleReporter(expectedItems uint64, opts ...Option) (*ConsoleReporter, error) {
	o := defaultReporterOptions()
	errs := []error{o.apply(opts)}

	var c component.Component
	if o.component == nil {
		errs = append(errs, ErrNilComponent)
	} else {
		var err error
		if c, err = o.component.Build(); err != nil {
			errs = append(errs, err)
		}
	}

	var w *Workload
	if c != nil {
		var err error
		if w, err = NewWorkload(DefaultWorkloadID, "", expectedItems, c); err != nil {
			errs = append(errs, err)
		}
	} else if expectedItems == 0 {
		errs = append(errs, ErrNoExpectedItems)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("unable to create reporter: %w", err)
	}

	workloads := NewWorkloads()
	_ = workloads.Add(w)
	return &ConsoleReporter{
		reporter: newReporter(o, workloads, true),
		workload: w,
	}, nil
}

// ReportSuccess records one successful item.
func (r *ConsoleReporter) ReportSuccess() error {
	if err := r.checkDisposed(); err != nil {
		return err
	}
	r.workload.Success()
	return nil
}

// ReportFailure records one failed item.
func (r *ConsoleReporter) ReportFailure() error {
	if err := r.checkDisposed(); err != nil {
		return err
	}
	r.workload.Failure()
	return nil
}

// AggregateReporter displays many workloads as one report. Its stats average
// the percent of every workload.
type AggregateReporter struct {
	*reporter
}

// NewAggregateReporter returns a reporter for the workloads registered with
// WithWorkload.
func NewAggregateReporter(opts ...Option) (*AggregateReporter, error) {
	o := defaultReporterOptions()
	errs := []error{o.apply(opts)}

	if len(o.workloads) == 0 {
		errs = append(errs, ErrNoWorkloads)
	}

	workloads := NewWorkloads()
	for _, spec := range o.workloads {
		c, err := spec.descriptor.Build()
		if err != nil {
			errs = append(errs, fmt.Errorf("workload %q: %w", spec.id, err))
			continue
		}
		w, err := NewWorkload(spec.id, spec.description, spec.expectedItems, c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := workloads.Add(w); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("unable to create reporter: %w", err)
	}
	return &AggregateReporter{reporter: newReporter(o, workloads, true)}, nil
}

// ReportSuccess records one successful item of workload id. Unknown ids are
// ignored.
func (r *AggregateReporter) ReportSuccess(id string) error {
	if err := r.checkDisposed(); err != nil {
		return err
	}
	if !r.workloads.Success(id) {
		r.opts.log.V(5).Info("success reported for unknown workload", "workload", id)
	}
	return nil
}

// ReportFailure records one failed item of workload id. Unknown ids are
// ignored.
func (r *AggregateReporter) ReportFailure(id string) error {
	if err := r.checkDisposed(); err != nil {
		return err
	}
	if !r.workloads.Failure(id) {
		r.opts.log.V(5).Info("failure reported for unknown workload", "workload", id)
	}
	return nil
}

// Workloads returns the workloads in display order.
func (r *AggregateReporter) Workloads() []*Workload {
	return r.workloads.All()
}

// BackgroundReporter tracks a single workload without displaying anything.
// It only notifies progress and completion, and exports the completion stats.
type BackgroundReporter struct {
	*reporter
	workload *Workload
}

// NewBackgroundReporter returns a reporter for expectedItems items that never
// writes frames.
func NewBackgroundReporter(expectedItems uint64, opts ...Option) (*BackgroundReporter, error) {
	o := defaultReporterOptions()
	errs := []error{o.apply(opts)}

	w, err := NewWorkload(DefaultWorkloadID, "", expectedItems, component.NewSpinner(false))
	if err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("unable to create reporter: %w", err)
	}

	workloads := NewWorkloads()
	_ = workloads.Add(w)
	return &BackgroundReporter{
		reporter: newReporter(o, workloads, false),
		workload: w,
	}, nil
}

// ReportSuccess records one successful item.
func (r *BackgroundReporter) ReportSuccess() error {
	if err := r.checkDisposed(); err != nil {
		return err
	}
	r.workload.Success()
	return nil
}

// ReportFailure records one unsuccessful item.
func (r *BackgroundReporter) ReportFailure() error {
	if err := r.checkDisposed(); err != nil {
		return err
	}
	r.workload.Failure()
	return nil
}
