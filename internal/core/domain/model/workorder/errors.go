package workorder

import "mes/internal/pkg/errs"

// Rule violations. Reasons are shown to clients verbatim.
var (
	ErrApprovedCannotRevertToDraft = errs.NewRuleIsViolatedError("已审核的工单不能变更为草稿状态。")
	ErrScheduledOnlyRouteEditable  = errs.NewRuleIsViolatedError("已排产的工单只能修改工艺路线。")
	ErrScheduledStepIsStarted      = errs.NewRuleIsViolatedError("已排产的工单只能修改待处理和未报工的工序。")
	ErrSubmittedMustBeRecalled     = errs.NewRuleIsViolatedError("已提交的工单需撤回后才能编辑。")
	ErrApprovedMustBeUnapproved    = errs.NewRuleIsViolatedError("已审核的工单需反审核后才能编辑。")
	ErrScheduledCannotBeDeleted    = errs.NewRuleIsViolatedError("已排产的工单不可删除。")
	ErrOnlyApprovedCanBeSplit      = errs.NewRuleIsViolatedError("只有已审核的工单可以拆分。")
)

// SplitFailedMessage is the public message of a failed task reconciliation.
const SplitFailedMessage = "工单拆分失败，请联系管理员。"
