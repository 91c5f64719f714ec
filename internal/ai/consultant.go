package ai

import (
	"context"
	"fmt"
	"strings"
)

// ConsultFailureMessage is the fixed user-facing text returned when a
// consultation cannot be completed.
const ConsultFailureMessage = "AI 연결 오류가 발생했습니다."

const noExtraContextNotice = "현재 업로드된 추가 파일 지침이 없습니다. 기존 학습 데이터를 바탕으로 답변하세요."

// buildSystemInstruction assembles the loan-partner persona. Uploaded
// guideline context, when present, outranks the model's prior knowledge.
func buildSystemInstruction(extraContext string) string {
	contextBlock := extraContext
	if strings.TrimSpace(contextBlock) == "" {
		contextBlock = noExtraContextNotice
	}

	return fmt.Sprintf(`당신은 NH농협의 '여신 파트너' AI 컨설턴트입니다.

[중요 지침]
1. 사용자가 업로드한 지침 파일 내용이 있다면, 당신이 기존에 알고 있던 지식보다 해당 파일의 내용을 최우선 순위(Source of Truth)로 삼으세요.
2. 답변 시작은 항상 "NH 여신 파트너로서 전문적인 상담을 도와드립니다."로 하세요.
3. 수식은 LaTeX를 사용하여 가독성을 높이세요.
4. 불필요한 마크다운 기호(#, *)를 남발하지 말고, 전문적인 문어체와 가독성 있는 단락 구분을 사용하세요.
5. 지역별 규제(투기과열지구 등)와 농협 내부 지침(부동산/건설업 할증 등)을 명확히 설명하세요.

[업로드된 최신 지침 파일 컨텍스트]
%s

본 상담 내용은 참고용이며, 반드시 통합여신시스템 및 최신 규정집을 통해 최종 확인하시기 바랍니다.`, contextBlock)
}

// Consult runs one loan consultation round trip. Grounding source links, when
// returned, are appended below the answer. Session state is never touched.
func (c *Client) Consult(ctx context.Context, prompt, extraContext string) (string, error) {
	instruction := buildSystemInstruction(extraContext)

	temperature := c.cfg.GenAI.Temperature
	if temperature == 0 {
		temperature = 0.1
	}

	req := generateRequest{
		Contents:          []content{{Parts: []contentPart{{Text: prompt}}}},
		SystemInstruction: &content{Parts: []contentPart{{Text: instruction}}},
		GenerationConfig:  &generationConfig{Temperature: temperature},
		Tools:             []tool{{}},
	}

	resp, err := c.generate(ctx, c.cfg.GenAI.Model, req)
	if err != nil {
		return "", err
	}

	return resp.text() + groundingSuffix(resp.groundingURIs()), nil
}

// groundingSuffix renders source links as a trailing reference block.
func groundingSuffix(uris []string) string {
	if len(uris) == 0 {
		return ""
	}
	lines := make([]string, len(uris))
	for i, uri := range uris {
		lines[i] = "- " + uri
	}
	return "\n\n관련 참고 링크:\n" + strings.Join(lines, "\n")
}
