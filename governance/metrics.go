// Copyright 2025 The govengine Authors
// This file is part of the govengine library.
//
// The govengine library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The govengine library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the govengine library. If not, see <http://www.gnu.org/licenses/>.

package governance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type engineMetrics struct {
	proposalsCreated  prometheus.Counter
	proposalsDecided  prometheus.Counter
	proposalsExecuted prometheus.Counter
	activeProposals   prometheus.Gauge
	votesAccepted     *prometheus.CounterVec // by support
	votesRejected     *prometheus.CounterVec // by reason
}

func (e *Engine) initMetrics() {
	factory := promauto.With(e.cfg.PromRegistry)
	e.metrics = &engineMetrics{
		proposalsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "govengine_proposals_created_total",
			Help: "Number of proposals created",
		}),
		proposalsDecided: factory.NewCounter(prometheus.CounterOpts{
			Name: "govengine_proposals_decided_total",
			Help: "Number of proposals decided",
		}),
		proposalsExecuted: factory.NewCounter(prometheus.CounterOpts{
			Name: "govengine_proposals_executed_total",
			Help: "Number of proposals executed",
		}),
		activeProposals: factory.NewGauge(prometheus.GaugeOpts{
			Name: "govengine_active_proposals",
			Help: "Number of proposals not yet decided",
		}),
		votesAccepted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govengine_votes_accepted_total",
			Help: "Number of votes accepted and tallied",
		}, []string{"support"}),
		votesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "govengine_votes_rejected_total",
			Help: "Number of votes rejected",
		}, []string{"reason"}),
	}
}

func supportLabel(support bool) string {
	if support {
		return "for"
	}
	return "against"
}

func rejectionLabel(err error) string {
	switch err {
	case ErrVotingNotStarted:
		return "not_started"
	case ErrVotingClosed:
		return "closed"
	case ErrAlreadyVoted:
		return "already_voted"
	case ErrNullifierReused:
		return "nullifier_reused"
	case ErrInvalidProof:
		return "invalid_proof"
	case ErrUnknownRoot:
		return "unknown_root"
	case ErrIneligibleVoter:
		return "ineligible"
	case ErrProposalNotFound:
		return "not_found"
	default:
		return "other"
	}
}
