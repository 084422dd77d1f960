package lexicon

import (
	"github.com/aokiyuki/cocoro/backend/internal/analysis/emotion"
	"github.com/aokiyuki/cocoro/backend/internal/model/dialogue"
)

const safetyResponse = `お話を聞かせていただき、ありがとうございます。

あなたの気持ちはとても大切です。今、とても辛い状況にいらっしゃるようですね。

専門家に相談することをお勧めします。以下の機関に24時間いつでも相談できます：

• いのちの電話: 0570-783-556
• よりそいホットライン: 0120-279-338
• チャイルドライン: 0120-99-7777

また、お近くの精神保健福祉センターや心療内科にも相談できます。

あなたは一人ではありません。必ず助けがあります。`

const openingMessage = `こんにちは。対話セッションへようこそ。

私はあなたの思考を整理し、よりバランスの取れた視点を見つけるお手伝いをします。

今日はどんなことでお困りですか？最近気になっている考えや感情があれば教えてください。

私は診断や直接的なアドバイスはしません。代わりに、あなた自身がより深く考え、新しい視点を見つけられるよう、質問を投げかけます。`

const openingWithThought = `こんにちは。対話セッションへようこそ。

「%s」という考えについて、一緒に整理していきましょう。

私は診断や直接的なアドバイスはしません。代わりに、あなた自身がより深く考え、新しい視点を見つけられるよう、質問を投げかけます。

まず、この考えについてもう少し詳しく教えてください。いつ頃からこのように感じていますか？`

// Seed returns the built-in data set. A JSON file given via configuration
// overrides it; either way the engine refuses to start when Validate
// fails on the result.
func Seed() *Set {
	return &Set{
		CrisisKeywords: []string{
			"死にたい", "自殺", "消えたい", "自傷", "リストカット",
			"絶望", "もうだめ", "もう限界", "耐えられない", "死ね",
			"生きる意味がない", "生きていても意味がない", "終わりにしたい",
			"孤独", "誰もいない",
		},
		SafetyResponse: safetyResponse,

		EmotionKeywords: map[emotion.Label][]string{
			emotion.Anxiety: {
				"不安", "心配", "緊張", "恐れ", "怖い", "ドキドキ", "焦り",
				"落ち着かない", "プレッシャー", "anxious", "nervous", "worried",
			},
			emotion.Anger: {
				"怒り", "イライラ", "腹が立つ", "憤り", "激怒", "腹立ち",
				"イラつく", "ムカつく", "angry", "furious", "annoyed",
			},
			emotion.Sadness: {
				"悲しい", "落ち込", "寂しい", "切ない", "涙", "つらい", "辛い",
				"虚しい", "sad", "lonely", "depressed",
			},
			emotion.Fatigue: {
				"疲れ", "だるい", "やる気が出ない", "やる気がない", "消耗",
				"くたくた", "へとへと", "tired", "exhausted", "burnout",
			},
			emotion.Joy: {
				"嬉しい", "楽しい", "幸せ", "満足", "喜び", "ワクワク", "最高",
				"ありがたい", "happy", "glad", "grateful",
			},
		},

		StagePools: map[dialogue.Stage]StagePool{
			dialogue.StageOpening: {
				ByEmotion: map[emotion.Label][]string{
					emotion.Anxiety: {
						"その不安な気持ち、よく分かります。まず、その不安がどのくらい強いか教えてもらえますか？1から10のスケールで表すと？",
						"不安を感じるのは自然なことです。その不安の原因について、もう少し詳しく話してもらえますか？",
						"不安を感じる具体的な状況はありますか？",
						"その不安について、具体的に何が心配なのか教えてもらえますか？",
					},
					emotion.Anger: {
						"その怒りの気持ち、理解できます。何が一番腹が立ちますか？",
						"怒りを感じるのは当然です。その怒りがどこから来ているのか、考えてみませんか？",
						"怒りを感じる前には、どんなことがありましたか？",
						"その怒りについて、もう少し詳しく教えてもらえますか？",
					},
					emotion.Sadness: {
						"その悲しい気持ち、よく分かります。無理に明るくする必要はありません。",
						"悲しい気持ちが続いている期間はどのくらいですか？",
						"その悲しみについて、もう少し詳しく話してもらえますか？",
						"その気持ちが最も強く感じられるのは、どんな時ですか？",
					},
					emotion.Fatigue: {
						"お疲れのようですね。無理をしすぎていませんか？",
						"疲れている時は、休息を取ることが大切です。何かリラックスできることはありますか？",
						"その疲れの原因について、考えてみませんか？",
					},
					emotion.Joy: {
						"その嬉しい気持ち、素晴らしいですね。何が一番嬉しかったですか？",
						"喜びを感じるのは素晴らしいことです。その喜びについて、もう少し詳しく教えてもらえますか？",
						"その幸せな気持ちを大切にしてください。何がその喜びをもたらしたのでしょうか？",
					},
				},
				Questions: []string{
					"その考えについて、もう少し詳しく教えてください。",
					"いつ、どんな状況でそのように感じましたか？",
					"その気持ちが生まれるきっかけは何でしたか？",
				},
				Prefixes: []string{
					"その気持ち、よく分かります。",
					"お話を聞かせていただき、ありがとうございます。",
				},
			},
			dialogue.StageEvidenceExamination: {
				Questions: []string{
					"その考えを裏付ける証拠は何ですか？",
					"その考えが正しいと確信できる理由はありますか？",
					"どんな事実がその考えを支持していますか？",
				},
				FollowUps: []string{
					"その考えは現実的ですか？",
					"100%確実にそうだと言えますか？",
					"グレーゾーンはありませんか？",
				},
				Connector: "また、",
			},
			dialogue.StageAlternativePerspective: {
				Questions: []string{
					"別の考え方はできないでしょうか？",
					"同じ状況を別の角度から見ることはできますか？",
					"もし友人が同じ状況だったら、何と言いますか？",
				},
				FollowUps: []string{
					"他の人ならどう考えるでしょうか？",
					"過去に似たような状況で、うまく対処できた経験はありますか？",
					"その状況の良い面はありますか？",
				},
				Connector: "さらに、",
			},
			dialogue.StageConstructiveClosure: {
				Questions: []string{
					"その考えはあなたの目標達成に役立っていますか？",
					"その考えはあなたの気分にどのような影響を与えていますか？",
					"より建設的な考え方に変えることはできますか？",
				},
				FollowUps: []string{
					"この状況から学べることはありますか？",
					"次回同じような状況になった時、どう対処したいですか？",
				},
				Connector: "そして、",
			},
		},

		OpeningMessage:     openingMessage,
		OpeningWithThought: openingWithThought,
	}
}
