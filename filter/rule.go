package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/dinekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("candidate", cel.DynType),
			cel.Variable("ctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// RuleFilter 是 CEL (Common Expression Language) 驱动的规则过滤器，
// 让运营/管理端用表达式描述过滤条件而无需改代码。
//
// 表达式返回 true 表示候选被过滤掉。可用变量：
//   - candidate: {id, name, rating, price_level, cuisine_types}
//   - ctx: {mode, weather, city, params}
//
// 示例：
//   - `candidate.rating < 3.0` → 过滤低分餐厅
//   - `ctx.mode == "business" && candidate.price_level < 2` → 商务场景过滤低价位
//   - `"hotpot" in candidate.cuisine_types && ctx.weather == "hot"` → 高温天过滤火锅
type RuleFilter struct {
	expr string
	prg  cel.Program
}

// NewRuleFilter 编译表达式并创建过滤器。表达式不合法返回 INVALID_INPUT。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCompose, core.ErrorCodeInternalError,
			fmt.Sprintf("filter: init cel env: %v", err))
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, core.NewDomainError(core.ModuleCompose, core.ErrorCodeInvalidInput,
			fmt.Sprintf("filter: compile rule %q: %v", expr, issues.Err()))
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleCompose, core.ErrorCodeInvalidInput,
			fmt.Sprintf("filter: build rule program %q: %v", expr, err))
	}
	return &RuleFilter{expr: expr, prg: prg}, nil
}

func (f *RuleFilter) Name() string { return "filter.rule" }

func (f *RuleFilter) ShouldFilter(_ context.Context, dctx *core.DiningContext, c *core.Candidate) (bool, error) {
	input := map[string]any{
		"candidate": candidateInput(c),
		"ctx":       contextInput(dctx),
	}

	out, _, err := f.prg.Eval(input)
	if err != nil {
		return false, fmt.Errorf("filter: eval rule %q: %w", f.expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("filter: rule %q must return boolean, got %T", f.expr, out.Value())
	}
	return result, nil
}

func candidateInput(c *core.Candidate) map[string]any {
	if c == nil {
		return map[string]any{}
	}
	return map[string]any{
		"id":            c.ID,
		"name":          c.Name,
		"rating":        c.Rating,
		"price_level":   c.PriceLevel,
		"cuisine_types": c.CuisineTypes,
	}
}

func contextInput(dctx *core.DiningContext) map[string]any {
	if dctx == nil {
		return map[string]any{}
	}
	return map[string]any{
		"mode":    string(dctx.Mode),
		"weather": dctx.Weather,
		"city":    dctx.Location.City,
		"params":  dctx.Params,
	}
}
