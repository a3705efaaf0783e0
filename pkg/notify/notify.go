// Package notify 通过企业微信群机器人Webhook推送统计结果
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"SeqStats/pkg/seqStats"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://qyapi.weixin.qq.com/cgi-bin/webhook/send"

// Message 企业微信Webhook消息结构
type Message struct {
	MsgType  string           `json:"msgtype"`
	Text     *TextContent     `json:"text,omitempty"`
	Markdown *MarkdownContent `json:"markdown,omitempty"`
}

type TextContent struct {
	Content             string   `json:"content"`
	MentionedList       []string `json:"mentioned_list,omitempty"`
	MentionedMobileList []string `json:"mentioned_mobile_list,omitempty"`
}

type MarkdownContent struct {
	Content string `json:"content"`
}

// NotificationSender 通知发送器, WebhookKey为空时不发送
type NotificationSender struct {
	WebhookKey string
	BaseURL    string
	Client     *http.Client
	Enabled    bool
}

// NewNotificationSender 创建新的通知发送器
func NewNotificationSender(webhookKey string) *NotificationSender {
	return &NotificationSender{
		WebhookKey: webhookKey,
		BaseURL:    DefaultBaseURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
		Enabled:    webhookKey != "",
	}
}

// SendText 发送文本消息
func (s *NotificationSender) SendText(content string, mentionedList, mentionedMobileList []string) error {
	if !s.Enabled {
		return nil
	}
	return s.send(Message{
		MsgType: "text",
		Text: &TextContent{
			Content:             content,
			MentionedList:       mentionedList,
			MentionedMobileList: mentionedMobileList,
		},
	})
}

// SendMarkdown 发送Markdown消息
func (s *NotificationSender) SendMarkdown(content string) error {
	if !s.Enabled {
		return nil
	}
	return s.send(Message{
		MsgType:  "markdown",
		Markdown: &MarkdownContent{Content: content},
	})
}

func (s *NotificationSender) send(message Message) error {
	var webhookURL = fmt.Sprintf("%s?key=%s", s.BaseURL, s.WebhookKey)

	jsonData, err := json.Marshal(message)
	if err != nil {
		return errors.Wrap(err, "marshal notification")
	}

	resp, err := s.Client.Post(webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return errors.Wrap(err, "post notification")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("notification returned status %d", resp.StatusCode)
	}

	slog.Info("notification sent", "type", message.MsgType)
	return nil
}

// BatchSummary 汇总一批文件的N50结果为Markdown, failed为处理失败的输入
func BatchSummary(results []*seqStats.FileStats, failed []string, elapsed time.Duration) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**SeqStats** %d file(s) done in %s\n", len(results), elapsed.Round(time.Millisecond))
	for _, r := range results {
		fmt.Fprintf(
			&sb,
			"> %s: seqs=<font color=\"info\">%d</font> len=%d N50=<font color=\"info\">%d</font>\n",
			r.Path, r.TotalSeqs, r.TotalLen, r.N50,
		)
	}
	if len(failed) > 0 {
		fmt.Fprintf(&sb, "<font color=\"warning\">%d failed</font>: %s\n", len(failed), strings.Join(failed, ", "))
	}
	return sb.String()
}
