package model

type CommonParam struct {
	RequestID string `json:"-" form:"-"`
}

type CommonParamInterface interface {
	SetRequestID(id string)
}

func (p *CommonParam) SetRequestID(id string) {
	p.RequestID = id
}

// SessionCommonParam 作用于某一场比赛会话的请求参数
type SessionCommonParam struct {
	CommonParam
	EventID string `json:"event_id" form:"event_id" binding:"required"`
}

type SessionCommonParamInterface interface {
	CommonParamInterface
	GetEventID() string
}

func (p *SessionCommonParam) GetEventID() string {
	return p.EventID
}
