package catalog

// Default returns the compiled-in content catalog. Declaration order of the
// dimension table is load-bearing: it is the tie-break for gap ordering.
func Default() *Catalog {
	return &Catalog{
		Dimensions: []Dimension{
			{
				Key:        "incident",
				Label:      "Incident Response",
				LowAnchor:  "Outages are discovered by customers and resolved ad hoc.",
				MidAnchor:  "A ticket queue exists but ownership and escalation are informal.",
				HighAnchor: "Documented severity ladder, on-call rotation, and post-incident reviews.",
			},
			{
				Key:        "change",
				Label:      "Change Management",
				LowAnchor:  "Production changes ship whenever someone decides to ship them.",
				MidAnchor:  "Changes are announced but approval and rollback are inconsistent.",
				HighAnchor: "Every change carries an owner, a window, and a tested rollback path.",
			},
			{
				Key:        "vendor",
				Label:      "Vendor Oversight",
				LowAnchor:  "Nobody can list the critical vendors or what their contracts say.",
				MidAnchor:  "A vendor list exists; renewal and performance reviews are sporadic.",
				HighAnchor: "Tiered vendor register with SLAs, renewal calendar, and exit plans.",
			},
			{
				Key:        "audit",
				Label:      "Audit Readiness",
				LowAnchor:  "Evidence gathering is a scramble that starts when the auditor emails.",
				MidAnchor:  "Controls are written down but testing happens once a year at best.",
				HighAnchor: "Continuous control monitoring with evidence collected as a byproduct.",
			},
			{
				Key:        "kpi",
				Label:      "KPI Visibility",
				LowAnchor:  "Leadership learns about operational misses from the board deck.",
				MidAnchor:  "Dashboards exist but definitions drift between teams.",
				HighAnchor: "One agreed metric tree reviewed weekly with owners per number.",
			},
			{
				Key:        "process",
				Label:      "Process Documentation",
				LowAnchor:  "Critical workflows live in the heads of two or three people.",
				MidAnchor:  "Runbooks exist for some flows; freshness is nobody's job.",
				HighAnchor: "Current runbooks for every critical flow, reviewed on a schedule.",
			},
		},
		Recommendations: map[string]Recommendation{
			"incident": {
				WindowDays: "0-30 days",
				Action:     "Stand up a severity ladder and a single escalation path; run one tabletop exercise against a realistic outage.",
			},
			"change": {
				WindowDays: "0-45 days",
				Action:     "Introduce a lightweight change calendar with named approvers and a rollback requirement for production changes.",
			},
			"vendor": {
				WindowDays: "30-60 days",
				Action:     "Build a tiered vendor register, flag contracts renewing inside the hold period, and assign an owner per tier-one vendor.",
			},
			"audit": {
				WindowDays: "30-90 days",
				Action:     "Map existing controls to the evidence they produce and close the gaps before the next diligence or audit cycle.",
			},
			"kpi": {
				WindowDays: "0-60 days",
				Action:     "Agree one operational metric tree with leadership, assign an owner per metric, and review it weekly.",
			},
			"process": {
				WindowDays: "60-90 days",
				Action:     "Document the five most key-person-dependent workflows first and put runbook review on a quarterly schedule.",
			},
		},
		Levers: []Lever{
			{
				ID: 1, Domain: DomainIncident, Name: "No severity ladder",
				Severity: SeverityCritical, Timing: TimingPreClose,
				Definition:  "Outages and defects are triaged by gut feel because no severity classification exists.",
				Symptoms:    "Every incident feels urgent; executives get pulled into minor issues; major issues wait in a queue.",
				Impact:      "Customer-facing outages run long and the same failures repeat without a learning loop.",
				TargetState: "A published severity ladder with response targets and a named owner per severity level.",
			},
			{
				ID: 2, Domain: DomainIncident, Name: "Hero-dependent on-call",
				Severity: SeverityHigh, Timing: TimingFirst100,
				Definition:  "One or two individuals absorb all after-hours response with no rotation or handoff notes.",
				Symptoms:    "The same names appear on every incident; vacations cause visible risk spikes.",
				Impact:      "Burnout-driven attrition converts a staffing issue into an availability issue overnight.",
				TargetState: "A staffed rotation with documented handoffs and a paging policy that survives any single departure.",
			},
			{
				ID: 3, Domain: DomainChange, Name: "Untracked production changes",
				Severity: SeverityCritical, Timing: TimingPreClose,
				Definition:  "Changes reach production without a record of what changed, who approved it, or how to undo it.",
				Symptoms:    "Incidents open with an archaeology phase; 'what changed?' has no fast answer.",
				Impact:      "Mean time to recovery balloons and diligence teams treat the environment as unauditable.",
				TargetState: "Every production change carries an owner, an approval, and a tested rollback path.",
			},
			{
				ID: 4, Domain: DomainChange, Name: "Freeze-by-fear releases",
				Severity: SeverityMedium, Timing: TimingOngoing,
				Definition:  "Release cadence slows to a crawl because past failures made every deploy a negotiation.",
				Symptoms:    "Large batched releases; change windows argued over in meetings; shadow hotfixes.",
				Impact:      "Batch size grows, failure blast radius grows with it, and the fear compounds.",
				TargetState: "Small, frequent, boring releases gated by checks instead of meetings.",
			},
			{
				ID: 5, Domain: DomainVendor, Name: "Unmapped critical vendors",
				Severity: SeverityCritical, Timing: TimingPreClose,
				Definition:  "No current register of which vendors sit under critical workflows or what their contracts commit to.",
				Symptoms:    "Contract renewals surprise the team; nobody can produce an SLA on request.",
				Impact:      "A single vendor failure or renewal dispute can halt a revenue-bearing workflow.",
				TargetState: "A tiered vendor register with SLAs, renewal dates, spend, and a named owner per critical vendor.",
			},
			{
				ID: 6, Domain: DomainVendor, Name: "Auto-renew drift",
				Severity: SeverityMedium, Timing: TimingOngoing,
				Definition:  "Contracts renew automatically at escalating rates because no one owns the renewal calendar.",
				Symptoms:    "Finance flags vendor spend creep; terms have not been renegotiated in years.",
				Impact:      "Margin quietly erodes and leverage for renegotiation is lost at each renewal.",
				TargetState: "A renewal calendar with a 90-day review trigger ahead of every auto-renew date.",
			},
			{
				ID: 7, Domain: DomainAudit, Name: "Evidence scramble",
				Severity: SeverityHigh, Timing: TimingPreClose,
				Definition:  "Audit and diligence requests trigger a multi-week hunt for screenshots, exports, and approvals.",
				Symptoms:    "Control owners rebuild evidence from memory; the same requests repeat each cycle.",
				Impact:      "Diligence timelines stretch, findings multiply, and deal or renewal risk rises.",
				TargetState: "Controls that emit their own evidence, collected continuously into an audit-ready repository.",
			},
			{
				ID: 8, Domain: DomainAudit, Name: "Paper controls",
				Severity: SeverityHigh, Timing: TimingFirst100,
				Definition:  "Written policies describe controls that are not actually operating in the environment.",
				Symptoms:    "Policy documents are current; sampled tickets show the policy is not followed.",
				Impact:      "The gap surfaces as audit findings at the worst possible moment.",
				TargetState: "Controls tested against real operations on a rolling schedule, with failures tracked to closure.",
			},
			{
				ID: 9, Domain: DomainKPI, Name: "Deck-driven metrics",
				Severity: SeverityHigh, Timing: TimingFirst100,
				Definition:  "Operational numbers are assembled manually for the board deck and exist nowhere else.",
				Symptoms:    "Metric definitions change between decks; mid-month questions have no answer.",
				Impact:      "Leadership steers on stale, hand-massaged numbers and misses inflection points.",
				TargetState: "A live metric tree with agreed definitions, owners, and weekly operational review.",
			},
			{
				ID: 10, Domain: DomainKPI, Name: "Definition drift",
				Severity: SeverityMedium, Timing: TimingOngoing,
				Definition:  "Teams compute the same metric differently, so cross-team numbers never reconcile.",
				Symptoms:    "Meetings open with debates about whose number is right.",
				Impact:      "Decisions stall while analysts reconcile; trust in all reporting decays.",
				TargetState: "One metric dictionary, version-controlled, with a single owner per definition.",
			},
			{
				ID: 11, Domain: DomainProcess, Name: "Key-person workflows",
				Severity: SeverityCritical, Timing: TimingPreClose,
				Definition:  "Revenue-critical workflows exist only in the heads of a small number of tenured staff.",
				Symptoms:    "Specific individuals cannot take consecutive days off; cross-training is 'planned'.",
				Impact:      "A single resignation can stall billing, fulfillment, or closing the books.",
				TargetState: "Current runbooks for every critical workflow, exercised by someone other than the author.",
			},
			{
				ID: 12, Domain: DomainProcess, Name: "Stale runbooks",
				Severity: SeverityMedium, Timing: TimingOngoing,
				Definition:  "Documentation exists but describes the process as it worked several reorgs ago.",
				Symptoms:    "New hires report the wiki is wrong; runbooks reference retired systems.",
				Impact:      "Stale docs are worse than none: they generate confident mistakes.",
				TargetState: "Runbook freshness reviews on a quarterly schedule with an owner per document.",
			},
		},
	}
}
